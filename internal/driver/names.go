package driver

// Driver names are business policy constants shared by the calculators,
// the critic's completeness checks, and the seeded dataset.
const (
	// Consensus baseline
	BaselineForecast = "Statistical Baseline Forecast"

	// Social signals
	TrendVelocity   = "Ingredient Trend Velocity"
	SentimentScore  = "Brand Sentiment Score"
	HashtagVolume   = "Viral Hashtag Volume"
	InfluencerCount = "Influencer Mention Count"

	// Marketing spend & engagement
	MarketingSpend  = "Performance Marketing Spend"
	CampaignCTR     = "Campaign Click-Through-Rate (CTR)"
	VideoCompletion = "Video Completion Rate"
	RetargetingPool = "Retargeting Pool Size"

	// Trade promo
	DiscountDepth  = "On-Platform Discount Depth"
	BundleActive   = "Bundle Offer Active Status"
	FlashSale      = "Flash Sale Participation"
	CartConversion = "Cart-Level Offer Conversion"

	// Digital shelf analytics
	KeywordRank    = "Share of Search (Keyword Rank)"
	PDPViews       = "Product Detail Page (PDP) Views"
	BuyBoxWinRate  = "Buy Box Win Rate"
	ReviewVelocity = "Rating & Review Velocity"

	// Weather / environment
	MaxTemperature = "Max Temperature Forecast"
	HumidityIndex  = "Humidity Index"
	UVIndex        = "UV Index"
	AQI            = "Air Quality Index (AQI)"

	// Competitor data
	CompetitorGap    = "Competitor Price Gap"
	CompetitorOOS    = "Competitor Out-of-Stock Status"
	CompetitorPromo  = "Competitor Promo Intensity"
	CompetitorLaunch = "Competitor New Launch Signal"

	// POS & open orders (informational only, excluded from boost math)
	SalesVelocity = "Real-Time Sales Velocity"
	DaysOnHand    = "Inventory Days on Hand (DOH)"
	OpenOrders    = "Distributor Open Orders"
	StockOuts     = "Stock-Out Incidents"
)
