package driver

// #region dates

// Seeded scenario dates. The dataset covers a steady day, a bullish day,
// and a bearish day for every SKU/customer pair.
const (
	DefaultAsOfDate = "2026-01-01"
	BullishDate     = "2026-01-02"
	BearishDate     = "2026-01-03"
)

// #endregion dates

// #region static-provider

// StaticProvider is an in-memory Provider seeded with the reference
// scenario dataset. It stands in for the real-time driver feed.
type StaticProvider struct {
	values    map[ContextKey]Values
	notes     map[ContextKey]Notes
	scenarios map[ContextKey]string
}

// NewStaticProvider returns a provider seeded with the full scenario set.
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{
		values:    seedValues(),
		notes:     seedNotes(),
		scenarios: seedScenarios(),
	}
}

// Values returns a copy of the driver values for the key, empty when unknown.
func (p *StaticProvider) Values(key ContextKey) Values {
	out := Values{}
	for k, v := range p.values[key.Normalize()] {
		out[k] = v
	}
	return out
}

// Notes returns a copy of the driver notes for the key, empty when unknown.
func (p *StaticProvider) Notes(key ContextKey) Notes {
	out := Notes{}
	for k, v := range p.notes[key.Normalize()] {
		out[k] = v
	}
	return out
}

// Scenario returns the scenario label (BASE/BULLISH/BEARISH) or "".
func (p *StaticProvider) Scenario(key ContextKey) string {
	return p.scenarios[key.Normalize()]
}

// Keys lists every seeded context key (fixture export, tests).
func (p *StaticProvider) Keys() []ContextKey {
	keys := make([]ContextKey, 0, len(p.values))
	for k := range p.values {
		keys = append(keys, k)
	}
	return keys
}

// #endregion static-provider

// #region seed-values

func ck(sku, customer, location, date string) ContextKey {
	return ContextKey{SKU: sku, Customer: customer, Location: location, AsOfDate: date}
}

const (
	skuPonds = "PONDS_SUPER_LIGHT_GEL_100G"
	skuDove  = "DOVE_HAIR_FALL_RESCUE_650ML"
)

func seedValues() map[ContextKey]Values {
	return map[ContextKey]Values{
		// --- 2026-01-01 (steady) ---
		ck(skuPonds, "BLINKIT", "BANGALORE", DefaultAsOfDate): {
			BaselineForecast: 92.0,
			TrendVelocity:    0.18,
			SentimentScore:   73.0,
			HashtagVolume:    1450.0,
			InfluencerCount:  26.0,
			MarketingSpend:   220000.0,
			CampaignCTR:      0.021,
			VideoCompletion:  0.34,
			RetargetingPool:  18500.0,
			DiscountDepth:    0.10,
			BundleActive:     false,
			FlashSale:        false,
			CartConversion:   0.06,
			KeywordRank:      4.0,
			PDPViews:         52000.0,
			BuyBoxWinRate:    0.96,
			ReviewVelocity:   38.0,
			MaxTemperature:   26.5,
			HumidityIndex:    0.62,
			UVIndex:          5.8,
			AQI:              138.0,
			CompetitorGap:    -15.0,
			CompetitorOOS:    false,
			CompetitorPromo:  0.10,
			CompetitorLaunch: false,
			SalesVelocity:    12.4,
			DaysOnHand:       7.2,
			OpenOrders:       320.0,
			StockOuts:        0.0,
		},
		ck(skuPonds, "ZEPTO", "BANGALORE", DefaultAsOfDate): {
			BaselineForecast: 88.0,
			TrendVelocity:    0.14,
			SentimentScore:   71.0,
			HashtagVolume:    1320.0,
			InfluencerCount:  22.0,
			MarketingSpend:   150000.0,
			CampaignCTR:      0.019,
			VideoCompletion:  0.31,
			RetargetingPool:  14200.0,
			DiscountDepth:    0.12,
			BundleActive:     true,
			FlashSale:        false,
			CartConversion:   0.07,
			KeywordRank:      6.0,
			PDPViews:         41000.0,
			BuyBoxWinRate:    0.93,
			ReviewVelocity:   29.0,
			MaxTemperature:   26.5,
			HumidityIndex:    0.62,
			UVIndex:          5.8,
			AQI:              138.0,
			CompetitorGap:    10.0,
			CompetitorOOS:    false,
			CompetitorPromo:  0.12,
			CompetitorLaunch: false,
			SalesVelocity:    9.8,
			DaysOnHand:       5.9,
			OpenOrders:       260.0,
			StockOuts:        1.0,
		},
		ck(skuDove, "BLINKIT", "BANGALORE", DefaultAsOfDate): {
			BaselineForecast: 78.0,
			TrendVelocity:    0.06,
			SentimentScore:   69.0,
			HashtagVolume:    820.0,
			InfluencerCount:  9.0,
			MarketingSpend:   90000.0,
			CampaignCTR:      0.014,
			VideoCompletion:  0.29,
			RetargetingPool:  9100.0,
			DiscountDepth:    0.08,
			BundleActive:     false,
			FlashSale:        false,
			CartConversion:   0.04,
			KeywordRank:      8.0,
			PDPViews:         29000.0,
			BuyBoxWinRate:    0.91,
			ReviewVelocity:   21.0,
			MaxTemperature:   26.5,
			HumidityIndex:    0.62,
			UVIndex:          5.8,
			AQI:              138.0,
			CompetitorGap:    35.0,
			CompetitorOOS:    true,
			CompetitorPromo:  0.18,
			CompetitorLaunch: true,
			SalesVelocity:    6.1,
			DaysOnHand:       9.4,
			OpenOrders:       180.0,
			StockOuts:        0.0,
		},
		ck(skuDove, "ZEPTO", "BANGALORE", DefaultAsOfDate): {
			BaselineForecast: 74.0,
			TrendVelocity:    0.05,
			SentimentScore:   68.0,
			HashtagVolume:    760.0,
			InfluencerCount:  8.0,
			MarketingSpend:   70000.0,
			CampaignCTR:      0.013,
			VideoCompletion:  0.27,
			RetargetingPool:  8300.0,
			DiscountDepth:    0.10,
			BundleActive:     true,
			FlashSale:        true,
			CartConversion:   0.06,
			KeywordRank:      10.0,
			PDPViews:         24500.0,
			BuyBoxWinRate:    0.88,
			ReviewVelocity:   18.0,
			MaxTemperature:   26.5,
			HumidityIndex:    0.62,
			UVIndex:          5.8,
			AQI:              138.0,
			CompetitorGap:    20.0,
			CompetitorOOS:    false,
			CompetitorPromo:  0.22,
			CompetitorLaunch: false,
			SalesVelocity:    5.4,
			DaysOnHand:       6.8,
			OpenOrders:       160.0,
			StockOuts:        1.0,
		},

		// --- 2026-01-02 (bullish: strong social + promos + shelf) ---
		ck(skuPonds, "BLINKIT", "BANGALORE", BullishDate): {
			BaselineForecast: 95.0,
			TrendVelocity:    0.32,
			SentimentScore:   82.0,
			HashtagVolume:    2600.0,
			InfluencerCount:  38.0,
			MarketingSpend:   260000.0,
			CampaignCTR:      0.028,
			VideoCompletion:  0.41,
			RetargetingPool:  24000.0,
			DiscountDepth:    0.20,
			BundleActive:     true,
			FlashSale:        true,
			CartConversion:   0.11,
			KeywordRank:      2.0,
			PDPViews:         72000.0,
			BuyBoxWinRate:    0.98,
			ReviewVelocity:   52.0,
			MaxTemperature:   31.0,
			HumidityIndex:    0.68,
			UVIndex:          7.2,
			AQI:              165.0,
			CompetitorGap:    -25.0,
			CompetitorOOS:    true,
			CompetitorPromo:  0.05,
			CompetitorLaunch: false,
			SalesVelocity:    19.8,
			DaysOnHand:       4.8,
			OpenOrders:       520.0,
			StockOuts:        0.0,
		},
		ck(skuPonds, "ZEPTO", "BANGALORE", BullishDate): {
			BaselineForecast: 90.0,
			TrendVelocity:    0.26,
			SentimentScore:   79.0,
			HashtagVolume:    2100.0,
			InfluencerCount:  28.0,
			MarketingSpend:   180000.0,
			CampaignCTR:      0.023,
			VideoCompletion:  0.36,
			RetargetingPool:  17500.0,
			DiscountDepth:    0.18,
			BundleActive:     true,
			FlashSale:        false,
			CartConversion:   0.10,
			KeywordRank:      4.0,
			PDPViews:         56000.0,
			BuyBoxWinRate:    0.95,
			ReviewVelocity:   41.0,
			MaxTemperature:   31.0,
			HumidityIndex:    0.68,
			UVIndex:          7.2,
			AQI:              165.0,
			CompetitorGap:    -10.0,
			CompetitorOOS:    true,
			CompetitorPromo:  0.08,
			CompetitorLaunch: false,
			SalesVelocity:    15.2,
			DaysOnHand:       5.1,
			OpenOrders:       420.0,
			StockOuts:        0.0,
		},
		ck(skuDove, "BLINKIT", "BANGALORE", BullishDate): {
			BaselineForecast: 82.0,
			TrendVelocity:    0.14,
			SentimentScore:   75.0,
			HashtagVolume:    1350.0,
			InfluencerCount:  16.0,
			MarketingSpend:   120000.0,
			CampaignCTR:      0.019,
			VideoCompletion:  0.33,
			RetargetingPool:  13000.0,
			DiscountDepth:    0.12,
			BundleActive:     true,
			FlashSale:        false,
			CartConversion:   0.08,
			KeywordRank:      6.0,
			PDPViews:         38000.0,
			BuyBoxWinRate:    0.93,
			ReviewVelocity:   33.0,
			MaxTemperature:   28.0,
			HumidityIndex:    0.72,
			UVIndex:          6.1,
			AQI:              150.0,
			CompetitorGap:    -5.0,
			CompetitorOOS:    false,
			CompetitorPromo:  0.10,
			CompetitorLaunch: false,
			SalesVelocity:    8.4,
			DaysOnHand:       8.2,
			OpenOrders:       260.0,
			StockOuts:        0.0,
		},
		ck(skuDove, "ZEPTO", "BANGALORE", BullishDate): {
			BaselineForecast: 78.0,
			TrendVelocity:    0.10,
			SentimentScore:   73.0,
			HashtagVolume:    1100.0,
			InfluencerCount:  14.0,
			MarketingSpend:   95000.0,
			CampaignCTR:      0.017,
			VideoCompletion:  0.31,
			RetargetingPool:  11500.0,
			DiscountDepth:    0.15,
			BundleActive:     true,
			FlashSale:        true,
			CartConversion:   0.09,
			KeywordRank:      7.0,
			PDPViews:         34000.0,
			BuyBoxWinRate:    0.91,
			ReviewVelocity:   28.0,
			MaxTemperature:   28.0,
			HumidityIndex:    0.72,
			UVIndex:          6.1,
			AQI:              150.0,
			CompetitorGap:    5.0,
			CompetitorOOS:    false,
			CompetitorPromo:  0.12,
			CompetitorLaunch: false,
			SalesVelocity:    7.6,
			DaysOnHand:       7.4,
			OpenOrders:       230.0,
			StockOuts:        0.0,
		},

		// --- 2026-01-03 (bearish: weak social, low marketing, competitor pressure) ---
		ck(skuPonds, "BLINKIT", "BANGALORE", BearishDate): {
			BaselineForecast: 85.0,
			TrendVelocity:    -0.12,
			SentimentScore:   47.0,
			HashtagVolume:    180.0,
			InfluencerCount:  1.0,
			MarketingSpend:   18000.0,
			CampaignCTR:      0.007,
			VideoCompletion:  0.09,
			RetargetingPool:  1200.0,
			DiscountDepth:    0.00,
			BundleActive:     false,
			FlashSale:        false,
			CartConversion:   0.01,
			KeywordRank:      22.0,
			PDPViews:         9000.0,
			BuyBoxWinRate:    0.68,
			ReviewVelocity:   2.0,
			MaxTemperature:   19.5,
			HumidityIndex:    0.28,
			UVIndex:          1.2,
			AQI:              35.0,
			CompetitorGap:    35.0,
			CompetitorOOS:    false,
			CompetitorPromo:  0.35,
			CompetitorLaunch: true,
			SalesVelocity:    4.2,
			DaysOnHand:       14.5,
			OpenOrders:       80.0,
			StockOuts:        0.0,
		},
		ck(skuPonds, "ZEPTO", "BANGALORE", BearishDate): {
			BaselineForecast: 82.0,
			TrendVelocity:    -0.08,
			SentimentScore:   50.0,
			HashtagVolume:    240.0,
			InfluencerCount:  2.0,
			MarketingSpend:   25000.0,
			CampaignCTR:      0.009,
			VideoCompletion:  0.11,
			RetargetingPool:  1700.0,
			DiscountDepth:    0.01,
			BundleActive:     false,
			FlashSale:        false,
			CartConversion:   0.015,
			KeywordRank:      18.0,
			PDPViews:         12000.0,
			BuyBoxWinRate:    0.74,
			ReviewVelocity:   3.0,
			MaxTemperature:   19.5,
			HumidityIndex:    0.28,
			UVIndex:          1.2,
			AQI:              35.0,
			CompetitorGap:    20.0,
			CompetitorOOS:    false,
			CompetitorPromo:  0.30,
			CompetitorLaunch: true,
			SalesVelocity:    4.9,
			DaysOnHand:       13.0,
			OpenOrders:       110.0,
			StockOuts:        0.0,
		},
		ck(skuDove, "BLINKIT", "BANGALORE", BearishDate): {
			BaselineForecast: 72.0,
			TrendVelocity:    -0.04,
			SentimentScore:   52.0,
			HashtagVolume:    260.0,
			InfluencerCount:  2.0,
			MarketingSpend:   22000.0,
			CampaignCTR:      0.009,
			VideoCompletion:  0.12,
			RetargetingPool:  1400.0,
			DiscountDepth:    0.02,
			BundleActive:     false,
			FlashSale:        false,
			CartConversion:   0.02,
			KeywordRank:      16.0,
			PDPViews:         14000.0,
			BuyBoxWinRate:    0.79,
			ReviewVelocity:   4.0,
			MaxTemperature:   20.0,
			HumidityIndex:    0.30,
			UVIndex:          1.3,
			AQI:              38.0,
			CompetitorGap:    30.0,
			CompetitorOOS:    false,
			CompetitorPromo:  0.28,
			CompetitorLaunch: true,
			SalesVelocity:    3.8,
			DaysOnHand:       12.2,
			OpenOrders:       90.0,
			StockOuts:        0.0,
		},
		ck(skuDove, "ZEPTO", "BANGALORE", BearishDate): {
			BaselineForecast: 70.0,
			TrendVelocity:    -0.06,
			SentimentScore:   49.0,
			HashtagVolume:    210.0,
			InfluencerCount:  1.0,
			MarketingSpend:   15000.0,
			CampaignCTR:      0.006,
			VideoCompletion:  0.08,
			RetargetingPool:  900.0,
			DiscountDepth:    0.00,
			BundleActive:     false,
			FlashSale:        false,
			CartConversion:   0.01,
			KeywordRank:      20.0,
			PDPViews:         9500.0,
			BuyBoxWinRate:    0.66,
			ReviewVelocity:   2.0,
			MaxTemperature:   20.0,
			HumidityIndex:    0.30,
			UVIndex:          1.3,
			AQI:              38.0,
			CompetitorGap:    25.0,
			CompetitorOOS:    false,
			CompetitorPromo:  0.32,
			CompetitorLaunch: true,
			SalesVelocity:    3.1,
			DaysOnHand:       11.8,
			OpenOrders:       70.0,
			StockOuts:        0.0,
		},
	}
}

// #endregion seed-values

// #region seed-notes

func seedNotes() map[ContextKey]Notes {
	return map[ContextKey]Notes{
		ck(skuPonds, "BLINKIT", "BANGALORE", DefaultAsOfDate): {
			BaselineForecast: "Baseline from 3-year history; seasonality adjusted for early January.",
			TrendVelocity:    "Search trend mildly positive (steady hydration/gel moisturizers).",
			DiscountDepth:    "Only a light discount; not a major promo day.",
			BuyBoxWinRate:    "Strong availability and seller control.",
			CompetitorPromo:  "Competitors running moderate promo pressure.",
		},
		ck(skuPonds, "ZEPTO", "BANGALORE", DefaultAsOfDate): {
			BaselineForecast: "Baseline demand slightly lower vs Blinkit due to lower usual traffic.",
			BundleActive:     "Bundle enabled to improve conversion without deep discount.",
			BuyBoxWinRate:    "Healthy but slightly lower vs Blinkit (more third-party competition).",
		},
		ck(skuDove, "BLINKIT", "BANGALORE", DefaultAsOfDate): {
			BaselineForecast: "Baseline reflects steady replenishment behavior for large pack shampoo.",
			CompetitorOOS:    "Key competitor intermittently OOS, creating a tailwind.",
			CompetitorLaunch: "New launch creating some attention split in category.",
		},
		ck(skuDove, "ZEPTO", "BANGALORE", DefaultAsOfDate): {
			BaselineForecast: "Base demand steady; Zepto slightly more promo-driven.",
			FlashSale:        "Flash sale planned; expect short-lived demand spike.",
			CompetitorPromo:  "Competitors are relatively aggressive on price.",
		},
		ck(skuPonds, "BLINKIT", "BANGALORE", BullishDate): {
			TrendVelocity:  "Hydration/gel keywords trending strongly (viral skincare content).",
			SentimentScore: "Sentiment uplift driven by recent positive influencer reviews.",
			FlashSale:      "Flash sale slot secured; high short-term traffic expected.",
			KeywordRank:    "Top-of-search placement improves discoverability materially.",
			CompetitorOOS:  "Main competitor OOS -> switching opportunity.",
		},
		ck(skuPonds, "ZEPTO", "BANGALORE", BullishDate): {
			TrendVelocity:  "Strong upward velocity across search/social for hydration products.",
			CartConversion: "Coupons converting unusually well today.",
			CompetitorOOS:  "Competitor OOS supports incremental demand capture.",
		},
		ck(skuDove, "BLINKIT", "BANGALORE", BullishDate): {
			HumidityIndex: "Higher humidity increases hair-fall/frizz concern demand.",
			BundleActive:  "Bundle improves perceived value without deep discounting.",
		},
		ck(skuDove, "ZEPTO", "BANGALORE", BullishDate): {
			FlashSale:     "Flash sale increases visibility and conversion.",
			DiscountDepth: "Meaningful discount; expect demand lift.",
		},
		ck(skuPonds, "BLINKIT", "BANGALORE", BearishDate): {
			TrendVelocity:   "Search momentum turned negative after trend cooled.",
			SentimentScore:  "Sentiment weakened due to recent negative comments/complaints.",
			MarketingSpend:  "Spend cut sharply; fewer conversions expected.",
			BuyBoxWinRate:   "Buy box loss due to availability/seller competition.",
			CompetitorPromo: "Competitors running steep promos + new launch distracting demand.",
		},
		ck(skuPonds, "ZEPTO", "BANGALORE", BearishDate): {
			DiscountDepth:    "No meaningful promo levers active; demand likely soft.",
			KeywordRank:      "Lower visibility; fewer PDP visits.",
			CompetitorLaunch: "New competitor variant pulling attention and traffic.",
		},
		ck(skuDove, "BLINKIT", "BANGALORE", BearishDate): {
			MarketingSpend:  "Low spend reduces demand capture in planned purchases.",
			CompetitorPromo: "Competitor discounting is heavy; headwind for volume.",
		},
		ck(skuDove, "ZEPTO", "BANGALORE", BearishDate): {
			CampaignCTR:     "Low CTR indicates weak creative/targeting today.",
			BuyBoxWinRate:   "Availability/competition issues reduce conversion.",
			CompetitorPromo: "Strong competitor promo pressure.",
		},
	}
}

// #endregion seed-notes

// #region seed-scenarios

func seedScenarios() map[ContextKey]string {
	scenarios := map[string]string{
		DefaultAsOfDate: "BASE",
		BullishDate:     "BULLISH",
		BearishDate:     "BEARISH",
	}
	out := map[ContextKey]string{}
	for _, sku := range []string{skuPonds, skuDove} {
		for _, cust := range []string{"BLINKIT", "ZEPTO"} {
			for date, label := range scenarios {
				out[ck(sku, cust, "BANGALORE", date)] = label
			}
		}
	}
	return out
}

// #endregion seed-scenarios
