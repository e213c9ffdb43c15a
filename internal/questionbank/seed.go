package questionbank

// seedQuestions is the built-in question pool. Every difficulty carries at
// least three current-events questions so premium quotas can be met.
var seedQuestions = []Question{
	// Difficulty 1
	{ID: "stk-001", Category: CategoryStocks, Difficulty: 1,
		Text:         "What does owning a share of stock represent?",
		Options:      [4]string{"A loan to the company", "Partial ownership of the company", "A government bond", "A savings account"},
		CorrectIndex: 1,
		Explanation:  "A share is a unit of ownership in a corporation."},
	{ID: "stk-002", Category: CategoryStocks, Difficulty: 1,
		Text:         "What is a stock ticker?",
		Options:      [4]string{"A short symbol identifying a listed security", "A clock on the trading floor", "A type of dividend", "A broker's license"},
		CorrectIndex: 0},
	{ID: "eco-001", Category: CategoryEconomics, Difficulty: 1,
		Text:         "What does inflation measure?",
		Options:      [4]string{"Growth in employment", "The rise in the general price level", "Stock market returns", "Government debt"},
		CorrectIndex: 1},
	{ID: "eco-002", Category: CategoryEconomics, Difficulty: 1,
		Text:         "What does GDP stand for?",
		Options:      [4]string{"General Debt Position", "Gross Domestic Product", "Global Dividend Payout", "Government Deficit Plan"},
		CorrectIndex: 1},
	{ID: "cry-001", Category: CategoryCrypto, Difficulty: 1,
		Text:         "Which cryptocurrency was the first to launch?",
		Options:      [4]string{"Ethereum", "Litecoin", "Bitcoin", "Dogecoin"},
		CorrectIndex: 2},
	{ID: "pf-001", Category: CategoryPersonalFinance, Difficulty: 1,
		Text:         "What is an emergency fund?",
		Options:      [4]string{"Money set aside for unexpected expenses", "A high-risk investment", "A type of credit card", "A retirement pension"},
		CorrectIndex: 0},
	{ID: "pf-002", Category: CategoryPersonalFinance, Difficulty: 1,
		Text:         "What does APR describe on a loan?",
		Options:      [4]string{"The monthly payment", "The annual cost of borrowing", "The loan's maturity date", "The lender's profit margin"},
		CorrectIndex: 1},
	{ID: "hist-001", Category: CategoryMarketHistory, Difficulty: 1,
		Text:         "In which city is the New York Stock Exchange located?",
		Options:      [4]string{"Chicago", "Boston", "New York City", "Philadelphia"},
		CorrectIndex: 2},
	{ID: "ce-101", Category: CategoryEconomics, Difficulty: 1, CurrentEvents: true,
		Text:         "Which institution sets the federal funds target rate in the United States?",
		Options:      [4]string{"The Treasury", "The Federal Reserve", "Congress", "The SEC"},
		CorrectIndex: 1},
	{ID: "ce-102", Category: CategoryStocks, Difficulty: 1, CurrentEvents: true,
		Text:         "Which index tracks 500 large U.S. companies and is quoted daily in the news?",
		Options:      [4]string{"Nasdaq-100", "Russell 2000", "S&P 500", "FTSE 100"},
		CorrectIndex: 2},
	{ID: "ce-103", Category: CategoryCrypto, Difficulty: 1, CurrentEvents: true,
		Text:         "What is a spot bitcoin ETF?",
		Options:      [4]string{"A fund holding bitcoin directly", "A bitcoin mining company", "A crypto exchange", "A futures contract"},
		CorrectIndex: 0},
	{ID: "ce-104", Category: CategoryPersonalFinance, Difficulty: 1, CurrentEvents: true,
		Text:         "When central banks raise rates, what usually happens to savings account yields?",
		Options:      [4]string{"They fall", "They rise", "They stay fixed by law", "They become negative"},
		CorrectIndex: 1},

	// Difficulty 2
	{ID: "stk-101", Category: CategoryStocks, Difficulty: 2,
		Text:         "What does a price-to-earnings (P/E) ratio compare?",
		Options:      [4]string{"Price to book value", "Share price to earnings per share", "Revenue to debt", "Dividends to price"},
		CorrectIndex: 1},
	{ID: "stk-102", Category: CategoryStocks, Difficulty: 2,
		Text:         "What happens in a 2-for-1 stock split?",
		Options:      [4]string{"Share count doubles and price halves", "Company value doubles", "Dividends are cut in half", "Half the shares are cancelled"},
		CorrectIndex: 0},
	{ID: "eco-101", Category: CategoryEconomics, Difficulty: 2,
		Text:         "An inverted yield curve means what?",
		Options:      [4]string{"Long rates exceed short rates", "Short-term rates exceed long-term rates", "All rates are zero", "Bond prices are rising"},
		CorrectIndex: 1},
	{ID: "eco-102", Category: CategoryEconomics, Difficulty: 2,
		Text:         "Two consecutive quarters of negative GDP growth are commonly called what?",
		Options:      [4]string{"A correction", "A bear market", "A technical recession", "Stagflation"},
		CorrectIndex: 2},
	{ID: "cry-101", Category: CategoryCrypto, Difficulty: 2,
		Text:         "What is the maximum supply of bitcoin?",
		Options:      [4]string{"21 million", "100 million", "Unlimited", "1 billion"},
		CorrectIndex: 0},
	{ID: "pf-101", Category: CategoryPersonalFinance, Difficulty: 2,
		Text:         "What is the main tax advantage of a Roth-style retirement account?",
		Options:      [4]string{"Contributions are deductible", "Qualified withdrawals are tax-free", "No contribution limits", "Guaranteed returns"},
		CorrectIndex: 1},
	{ID: "hist-101", Category: CategoryMarketHistory, Difficulty: 2,
		Text:         "Black Monday, the largest one-day percentage drop of the Dow, happened in which year?",
		Options:      [4]string{"1929", "1987", "2001", "2008"},
		CorrectIndex: 1},
	{ID: "hist-102", Category: CategoryMarketHistory, Difficulty: 2,
		Text:         "Which bank's collapse in 2008 marked a peak of the financial crisis?",
		Options:      [4]string{"Lehman Brothers", "Goldman Sachs", "JPMorgan", "Wells Fargo"},
		CorrectIndex: 0},
	{ID: "ce-201", Category: CategoryEconomics, Difficulty: 2, CurrentEvents: true,
		Text:         "Which monthly U.S. report counts jobs added outside agriculture?",
		Options:      [4]string{"CPI", "Nonfarm payrolls", "PMI", "Beige Book"},
		CorrectIndex: 1},
	{ID: "ce-202", Category: CategoryStocks, Difficulty: 2, CurrentEvents: true,
		Text:         "The group of mega-cap tech stocks driving index returns is often nicknamed what?",
		Options:      [4]string{"The Big Four", "The Magnificent Seven", "The Nifty Fifty", "The Dogs of the Dow"},
		CorrectIndex: 1},
	{ID: "ce-203", Category: CategoryCrypto, Difficulty: 2, CurrentEvents: true,
		Text:         "What is a bitcoin halving?",
		Options:      [4]string{"Splitting a coin in two", "A 50% cut in block rewards", "A price crash of 50%", "A fork of the chain"},
		CorrectIndex: 1},
	{ID: "ce-204", Category: CategoryEconomics, Difficulty: 2, CurrentEvents: true,
		Text:         "Which index is most often cited in headlines about U.S. consumer inflation?",
		Options:      [4]string{"PPI", "CPI", "VIX", "ISM"},
		CorrectIndex: 1},

	// Difficulty 3
	{ID: "stk-201", Category: CategoryStocks, Difficulty: 3,
		Text:         "What does a stock's beta of 1.5 indicate?",
		Options:      [4]string{"50% less volatile than the market", "50% more volatile than the market", "A 1.5% dividend yield", "Earnings grew 1.5x"},
		CorrectIndex: 1},
	{ID: "stk-202", Category: CategoryStocks, Difficulty: 3,
		Text:         "Which option strategy combines owning shares with selling call options on them?",
		Options:      [4]string{"Protective put", "Covered call", "Straddle", "Iron condor"},
		CorrectIndex: 1},
	{ID: "eco-201", Category: CategoryEconomics, Difficulty: 3,
		Text:         "Which rule links the policy rate to inflation and output gaps?",
		Options:      [4]string{"The Taylor rule", "Okun's law", "The Phillips curve", "The rule of 72"},
		CorrectIndex: 0},
	{ID: "cry-201", Category: CategoryCrypto, Difficulty: 3,
		Text:         "Ethereum's 2022 'Merge' switched its consensus mechanism to what?",
		Options:      [4]string{"Proof of work", "Proof of stake", "Proof of authority", "Delegated proof of work"},
		CorrectIndex: 1},
	{ID: "pf-201", Category: CategoryPersonalFinance, Difficulty: 3,
		Text:         "Using the rule of 72, how long does money take to double at 8% per year?",
		Options:      [4]string{"6 years", "9 years", "12 years", "14 years"},
		CorrectIndex: 1},
	{ID: "hist-201", Category: CategoryMarketHistory, Difficulty: 3,
		Text:         "The Bretton Woods system pegged currencies to the U.S. dollar, which was convertible into what?",
		Options:      [4]string{"Silver", "Gold", "Oil", "British pounds"},
		CorrectIndex: 1},
	{ID: "hist-202", Category: CategoryMarketHistory, Difficulty: 3,
		Text:         "The Dutch 'tulip mania' bubble peaked in which century?",
		Options:      [4]string{"15th", "16th", "17th", "18th"},
		CorrectIndex: 2},
	{ID: "ce-301", Category: CategoryEconomics, Difficulty: 3, CurrentEvents: true,
		Text:         "Quantitative tightening shrinks a central bank's balance sheet mainly by doing what?",
		Options:      [4]string{"Raising reserve requirements", "Letting bonds mature without reinvesting", "Printing currency", "Cutting tax rates"},
		CorrectIndex: 1},
	{ID: "ce-302", Category: CategoryStocks, Difficulty: 3, CurrentEvents: true,
		Text:         "Zero-days-to-expiry (0DTE) options expire when?",
		Options:      [4]string{"At the end of the month", "The same trading day", "After one week", "Never"},
		CorrectIndex: 1},
	{ID: "ce-303", Category: CategoryCrypto, Difficulty: 3, CurrentEvents: true,
		Text:         "Which EU regulation sets a licensing regime for crypto-asset service providers?",
		Options:      [4]string{"MiFID II", "MiCA", "GDPR", "Basel III"},
		CorrectIndex: 1},
	{ID: "ce-304", Category: CategoryEconomics, Difficulty: 3, CurrentEvents: true,
		Text:         "A 'soft landing' describes what outcome of monetary tightening?",
		Options:      [4]string{"Inflation falls without a recession", "A sharp recession", "Hyperinflation", "A currency devaluation"},
		CorrectIndex: 0},
}
