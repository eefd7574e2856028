package boost

import "github.com/planflow/demand-planner/internal/driver"

// #region input-helpers

// num pulls a numeric driver out of the value set, recording the coerced
// value (or nil) into inputs. Absent and malformed drivers contribute
// nothing to the score.
func num(values driver.Values, name string, inputs map[string]any) (float64, bool) {
	v, ok := driver.Float(values[name])
	if ok {
		inputs[name] = v
	} else {
		inputs[name] = nil
	}
	return v, ok
}

// flag pulls a boolean driver, same recording convention as num.
func flag(values driver.Values, name string, inputs map[string]any) (bool, bool) {
	v, ok := driver.Bool(values[name])
	if ok {
		inputs[name] = v
	} else {
		inputs[name] = nil
	}
	return v, ok
}

// #endregion input-helpers

// #region social

// SocialSignal scores trend velocity, brand sentiment, hashtag volume,
// and influencer mentions into one boost fraction.
func SocialSignal(values driver.Values) CategoryResult {
	inputs := map[string]any{}
	trend, trendOK := num(values, driver.TrendVelocity, inputs)
	sentiment, sentimentOK := num(values, driver.SentimentScore, inputs)
	hashtags, hashtagsOK := num(values, driver.HashtagVolume, inputs)
	influencer, influencerOK := num(values, driver.InfluencerCount, inputs)

	tailwinds, headwinds := 0.0, 0.0
	if trendOK {
		switch {
		case trend >= 0.30:
			tailwinds += 0.40
		case trend >= 0.15:
			tailwinds += 0.25
		case trend >= 0.05:
			tailwinds += 0.10
		case trend <= -0.15:
			headwinds += 0.30
		case trend <= -0.05:
			headwinds += 0.15
		}
	}
	if sentimentOK {
		switch {
		case sentiment >= 80:
			tailwinds += 0.30
		case sentiment >= 70:
			tailwinds += 0.20
		case sentiment >= 60:
			tailwinds += 0.10
		case sentiment <= 40:
			headwinds += 0.35
		case sentiment <= 50:
			headwinds += 0.20
		}
	}
	if hashtagsOK {
		switch {
		case hashtags >= 2000:
			tailwinds += 0.25
		case hashtags >= 1200:
			tailwinds += 0.15
		case hashtags >= 600:
			tailwinds += 0.05
		case hashtags < 200:
			headwinds += 0.10
		}
	}
	if influencerOK {
		switch {
		case influencer >= 30:
			tailwinds += 0.25
		case influencer >= 15:
			tailwinds += 0.15
		case influencer >= 5:
			tailwinds += 0.05
		case influencer < 2:
			headwinds += 0.10
		}
	}

	net := round4(tailwinds - headwinds)
	return CategoryResult{
		Category:      CategorySocial,
		BoostFraction: signedStep(net),
		NetScore:      net,
		Inputs:        inputs,
	}
}

// #endregion social

// #region marketing

// MarketingSpend scores paid spend, CTR, video completion, and retargeting
// pool size.
func MarketingSpend(values driver.Values) CategoryResult {
	inputs := map[string]any{}
	spend, spendOK := num(values, driver.MarketingSpend, inputs)
	ctr, ctrOK := num(values, driver.CampaignCTR, inputs)
	vcr, vcrOK := num(values, driver.VideoCompletion, inputs)
	retarget, retargetOK := num(values, driver.RetargetingPool, inputs)

	tailwinds, headwinds := 0.0, 0.0
	if spendOK {
		switch {
		case spend >= 200000:
			tailwinds += 0.35
		case spend >= 120000:
			tailwinds += 0.25
		case spend >= 60000:
			tailwinds += 0.15
		case spend < 15000:
			headwinds += 0.35
		case spend < 30000:
			headwinds += 0.20
		}
	}
	if ctrOK {
		switch {
		case ctr >= 0.025:
			tailwinds += 0.25
		case ctr >= 0.018:
			tailwinds += 0.18
		case ctr >= 0.012:
			tailwinds += 0.10
		case ctr < 0.006:
			headwinds += 0.30
		case ctr < 0.010:
			headwinds += 0.15
		}
	}
	if vcrOK {
		switch {
		case vcr >= 0.40:
			tailwinds += 0.20
		case vcr >= 0.30:
			tailwinds += 0.15
		case vcr >= 0.20:
			tailwinds += 0.08
		case vcr < 0.10:
			headwinds += 0.20
		}
	}
	if retargetOK {
		switch {
		case retarget >= 20000:
			tailwinds += 0.20
		case retarget >= 12000:
			tailwinds += 0.12
		case retarget >= 6000:
			tailwinds += 0.06
		case retarget < 1500:
			headwinds += 0.15
		}
	}

	net := round4(tailwinds - headwinds)
	return CategoryResult{
		Category:      CategoryMarketing,
		BoostFraction: signedStep(net),
		NetScore:      net,
		Inputs:        inputs,
	}
}

// #endregion marketing

// #region trade-promo

// TradePromo scores discount depth, bundle/flash flags, and cart-level
// offer conversion. A context with no promo lever at all takes an extra
// headwind so bearish scenarios can surface.
func TradePromo(values driver.Values) CategoryResult {
	inputs := map[string]any{}
	discount, discountOK := num(values, driver.DiscountDepth, inputs)
	bundle, bundleOK := flag(values, driver.BundleActive, inputs)
	flash, flashOK := flag(values, driver.FlashSale, inputs)
	cartConv, cartConvOK := num(values, driver.CartConversion, inputs)

	tailwinds, headwinds := 0.0, 0.0
	if discountOK {
		switch {
		case discount >= 0.30:
			tailwinds += 0.45
		case discount >= 0.20:
			tailwinds += 0.35
		case discount >= 0.10:
			tailwinds += 0.20
		case discount >= 0.05:
			tailwinds += 0.10
		case discount < 0.01:
			headwinds += 0.10
		}
	}
	if bundleOK && bundle {
		tailwinds += 0.15
	}
	if flashOK && flash {
		tailwinds += 0.25
	}
	if cartConvOK {
		switch {
		case cartConv >= 0.10:
			tailwinds += 0.20
		case cartConv >= 0.06:
			tailwinds += 0.12
		case cartConv >= 0.03:
			tailwinds += 0.06
		case cartConv < 0.01:
			headwinds += 0.15
		case cartConv < 0.02:
			headwinds += 0.08
		}
	}

	noBundle := !bundleOK || !bundle
	noFlash := !flashOK || !flash
	if noBundle && noFlash && discountOK && discount < 0.02 {
		headwinds += 0.10
	}

	net := round4(tailwinds - headwinds)
	return CategoryResult{
		Category:      CategoryTradePromo,
		BoostFraction: signedStep(net),
		NetScore:      net,
		Inputs:        inputs,
	}
}

// #endregion trade-promo

// #region digital-shelf

// DigitalShelf scores keyword rank (lower is better), PDP views, buy box
// win rate, and review velocity.
func DigitalShelf(values driver.Values) CategoryResult {
	inputs := map[string]any{}
	rank, rankOK := num(values, driver.KeywordRank, inputs)
	pdp, pdpOK := num(values, driver.PDPViews, inputs)
	buybox, buyboxOK := num(values, driver.BuyBoxWinRate, inputs)
	reviews, reviewsOK := num(values, driver.ReviewVelocity, inputs)

	tailwinds, headwinds := 0.0, 0.0
	if rankOK {
		switch {
		case rank <= 3:
			tailwinds += 0.30
		case rank <= 6:
			tailwinds += 0.20
		case rank <= 10:
			tailwinds += 0.10
		case rank >= 25:
			headwinds += 0.35
		case rank >= 15:
			headwinds += 0.20
		}
	}
	if pdpOK {
		switch {
		case pdp >= 60000:
			tailwinds += 0.25
		case pdp >= 40000:
			tailwinds += 0.18
		case pdp >= 20000:
			tailwinds += 0.10
		case pdp < 8000:
			headwinds += 0.25
		case pdp < 15000:
			headwinds += 0.15
		}
	}
	if buyboxOK {
		switch {
		case buybox >= 0.95:
			tailwinds += 0.20
		case buybox >= 0.90:
			tailwinds += 0.12
		case buybox >= 0.80:
			tailwinds += 0.06
		case buybox < 0.70:
			headwinds += 0.35
		case buybox < 0.85:
			headwinds += 0.15
		}
	}
	if reviewsOK {
		switch {
		case reviews >= 40:
			tailwinds += 0.20
		case reviews >= 25:
			tailwinds += 0.12
		case reviews >= 10:
			tailwinds += 0.06
		case reviews < 3:
			headwinds += 0.20
		}
	}

	net := round4(tailwinds - headwinds)
	return CategoryResult{
		Category:      CategoryDigitalShelf,
		BoostFraction: signedStep(net),
		NetScore:      net,
		Inputs:        inputs,
	}
}

// #endregion digital-shelf

// #region weather

// WeatherEnvironment scores max temperature, humidity, UV, and AQI.
func WeatherEnvironment(values driver.Values) CategoryResult {
	inputs := map[string]any{}
	temp, tempOK := num(values, driver.MaxTemperature, inputs)
	humidity, humidityOK := num(values, driver.HumidityIndex, inputs)
	uv, uvOK := num(values, driver.UVIndex, inputs)
	aqi, aqiOK := num(values, driver.AQI, inputs)

	tailwinds, headwinds := 0.0, 0.0
	if tempOK {
		switch {
		case temp >= 35:
			tailwinds += 0.35
		case temp >= 30:
			tailwinds += 0.25
		case temp >= 26:
			tailwinds += 0.15
		case temp <= 15:
			headwinds += 0.35
		case temp <= 20:
			headwinds += 0.20
		}
	}
	if humidityOK {
		switch {
		case humidity >= 0.80:
			tailwinds += 0.20
		case humidity >= 0.65:
			tailwinds += 0.12
		case humidity >= 0.50:
			tailwinds += 0.06
		case humidity <= 0.25:
			headwinds += 0.15
		}
	}
	if uvOK {
		switch {
		case uv >= 8:
			tailwinds += 0.25
		case uv >= 6:
			tailwinds += 0.15
		case uv >= 4:
			tailwinds += 0.08
		case uv <= 1.5:
			headwinds += 0.15
		}
	}
	if aqiOK {
		switch {
		case aqi >= 200:
			tailwinds += 0.20
		case aqi >= 150:
			tailwinds += 0.12
		case aqi >= 100:
			tailwinds += 0.06
		case aqi < 40:
			headwinds += 0.10
		}
	}

	net := round4(tailwinds - headwinds)
	return CategoryResult{
		Category:      CategoryWeather,
		BoostFraction: signedStep(net),
		NetScore:      net,
		Inputs:        inputs,
	}
}

// #endregion weather

// #region competitor

// CompetitorData scores price gap (negative gap means we are cheaper),
// competitor stockouts, promo intensity, and new launch pressure. Unlike
// the other categories it accumulates a signed net directly.
func CompetitorData(values driver.Values) CategoryResult {
	inputs := map[string]any{}
	gap, gapOK := num(values, driver.CompetitorGap, inputs)
	oos, oosOK := flag(values, driver.CompetitorOOS, inputs)
	promo, promoOK := num(values, driver.CompetitorPromo, inputs)
	launch, launchOK := flag(values, driver.CompetitorLaunch, inputs)

	net := 0.0
	if gapOK {
		switch {
		case gap <= -20:
			net += 0.40
		case gap <= -5:
			net += 0.20
		case gap >= 30:
			net -= 0.40
		case gap >= 10:
			net -= 0.20
		}
	}
	if oosOK && oos {
		net += 0.50
	}
	if promoOK {
		switch {
		case promo >= 0.30:
			net -= 0.45
		case promo >= 0.20:
			net -= 0.30
		case promo >= 0.10:
			net -= 0.15
		}
	}
	if launchOK && launch {
		net -= 0.25
	}

	net = round4(net)
	return CategoryResult{
		Category:      CategoryCompetitor,
		BoostFraction: competitorStep(net),
		NetScore:      net,
		Inputs:        inputs,
	}
}

// #endregion competitor
