package models

// MissionTemplates is the static mission catalog, grouped by category through
// the Category field. Loaded once at process start; never mutated at runtime.
var MissionTemplates = []MissionTemplate{
	// security
	{
		Category:       "security",
		Title:          "Flash Loan Defense",
		Description:    "Protect your protocol from a sophisticated flash loan attack exploiting price oracle manipulation",
		PrimaryTrait:   TraitRiskManagement,
		SecondaryTrait: TraitEconomicStrategy,
		BaseReward:     TraitDelta{TraitRiskManagement: 4, TraitEconomicStrategy: 2},
		BaseDuration:   45,
		BaseDifficulty: 65,
		Rarity:         RarityCommon,
		MinLevel:       1,
	},
	{
		Category:       "security",
		Title:          "Multi-Sig Vault Security",
		Description:    "Implement advanced multi-signature security for your treasury management",
		PrimaryTrait:   TraitRiskManagement,
		SecondaryTrait: TraitLeadership,
		BaseReward:     TraitDelta{TraitRiskManagement: 5, TraitLeadership: 1},
		BaseDuration:   30,
		BaseDifficulty: 50,
		Rarity:         RarityCommon,
		MinLevel:       1,
	},
	{
		Category:       "security",
		Title:          "Zero-Day Exploit Response",
		Description:    "Respond to a critical zero-day vulnerability discovered in your smart contracts",
		PrimaryTrait:   TraitRiskManagement,
		SecondaryTrait: TraitLeadership,
		BaseReward:     TraitDelta{TraitRiskManagement: 6, TraitLeadership: 3},
		BaseDuration:   15,
		BaseDifficulty: 85,
		Rarity:         RarityRare,
		MinLevel:       5,
	},

	// governance
	{
		Category:       "governance",
		Title:          "Community Governance Crisis",
		Description:    "Navigate a controversial governance proposal that threatens to split your community",
		PrimaryTrait:   TraitLeadership,
		SecondaryTrait: TraitCommunityBuilding,
		BaseReward:     TraitDelta{TraitLeadership: 4, TraitCommunityBuilding: 2},
		BaseDuration:   90,
		BaseDifficulty: 70,
		Rarity:         RarityCommon,
		MinLevel:       2,
	},
	{
		Category:       "governance",
		Title:          "DAO Treasury Management",
		Description:    "Optimize treasury allocation during bear market conditions",
		PrimaryTrait:   TraitEconomicStrategy,
		SecondaryTrait: TraitLeadership,
		BaseReward:     TraitDelta{TraitEconomicStrategy: 4, TraitLeadership: 2},
		BaseDuration:   75,
		BaseDifficulty: 60,
		Rarity:         RarityCommon,
		MinLevel:       2,
	},
	{
		Category:       "governance",
		Title:          "Hostile Takeover Defense",
		Description:    "Defend against a coordinated attempt to acquire controlling governance tokens",
		PrimaryTrait:   TraitLeadership,
		SecondaryTrait: TraitCommunityBuilding,
		BaseReward:     TraitDelta{TraitLeadership: 7, TraitCommunityBuilding: 4},
		BaseDuration:   120,
		BaseDifficulty: 90,
		Rarity:         RarityLegendary,
		MinLevel:       10,
	},

	// innovation
	{
		Category:       "innovation",
		Title:          "Yield Farming Innovation",
		Description:    "Design and deploy a revolutionary yield farming mechanism with novel tokenomics",
		PrimaryTrait:   TraitEconomicStrategy,
		SecondaryTrait: TraitRiskManagement,
		BaseReward:     TraitDelta{TraitEconomicStrategy: 3, TraitRiskManagement: 2},
		BaseDuration:   60,
		BaseDifficulty: 55,
		Rarity:         RarityCommon,
		MinLevel:       1,
	},
	{
		Category:       "innovation",
		Title:          "Cross-Chain Bridge Development",
		Description:    "Launch a secure cross-chain bridge to expand your protocol's reach",
		PrimaryTrait:   TraitEconomicStrategy,
		SecondaryTrait: TraitRiskManagement,
		BaseReward:     TraitDelta{TraitEconomicStrategy: 5, TraitRiskManagement: 4},
		BaseDuration:   180,
		BaseDifficulty: 80,
		Rarity:         RarityRare,
		MinLevel:       7,
	},
	{
		Category:       "innovation",
		Title:          "AI-Powered Risk Engine",
		Description:    "Integrate artificial intelligence for real-time risk assessment and mitigation",
		PrimaryTrait:   TraitRiskManagement,
		SecondaryTrait: TraitEconomicStrategy,
		BaseReward:     TraitDelta{TraitRiskManagement: 8, TraitEconomicStrategy: 3},
		BaseDuration:   240,
		BaseDifficulty: 95,
		Rarity:         RarityLegendary,
		MinLevel:       15,
	},

	// community
	{
		Category:       "community",
		Title:          "Partnership Negotiations",
		Description:    "Secure a strategic alliance with a top-tier DeFi protocol for mutual benefit",
		PrimaryTrait:   TraitLeadership,
		SecondaryTrait: TraitCommunityBuilding,
		BaseReward:     TraitDelta{TraitLeadership: 2, TraitCommunityBuilding: 3},
		BaseDuration:   120,
		BaseDifficulty: 65,
		Rarity:         RarityCommon,
		MinLevel:       3,
	},
	{
		Category:       "community",
		Title:          "Global Marketing Campaign",
		Description:    "Launch a worldwide awareness campaign to onboard 100k new users",
		PrimaryTrait:   TraitCommunityBuilding,
		SecondaryTrait: TraitLeadership,
		BaseReward:     TraitDelta{TraitCommunityBuilding: 5, TraitLeadership: 2},
		BaseDuration:   150,
		BaseDifficulty: 70,
		Rarity:         RarityRare,
		MinLevel:       6,
	},
	{
		Category:       "community",
		Title:          "Developer Ecosystem Growth",
		Description:    "Build a thriving developer ecosystem with comprehensive tools and incentives",
		PrimaryTrait:   TraitCommunityBuilding,
		SecondaryTrait: TraitEconomicStrategy,
		BaseReward:     TraitDelta{TraitCommunityBuilding: 6, TraitEconomicStrategy: 3},
		BaseDuration:   200,
		BaseDifficulty: 75,
		Rarity:         RarityRare,
		MinLevel:       8,
	},

	// crisis
	{
		Category:       "crisis",
		Title:          "Market Crash Survival",
		Description:    "Navigate your protocol through a devastating 80% market crash while maintaining stability",
		PrimaryTrait:   TraitRiskManagement,
		SecondaryTrait: TraitLeadership,
		BaseReward:     TraitDelta{TraitRiskManagement: 3, TraitLeadership: 2},
		BaseDuration:   30,
		BaseDifficulty: 75,
		Rarity:         RarityCommon,
		MinLevel:       2,
	},
	{
		Category:       "crisis",
		Title:          "Regulatory Compliance Crisis",
		Description:    "Adapt to sudden regulatory changes while maintaining protocol operations",
		PrimaryTrait:   TraitLeadership,
		SecondaryTrait: TraitRiskManagement,
		BaseReward:     TraitDelta{TraitLeadership: 4, TraitRiskManagement: 3},
		BaseDuration:   45,
		BaseDifficulty: 80,
		Rarity:         RarityRare,
		MinLevel:       4,
	},
	{
		Category:       "crisis",
		Title:          "Liquidity Crisis Management",
		Description:    "Prevent a cascading liquidation event during extreme market volatility",
		PrimaryTrait:   TraitRiskManagement,
		SecondaryTrait: TraitEconomicStrategy,
		BaseReward:     TraitDelta{TraitRiskManagement: 6, TraitEconomicStrategy: 4},
		BaseDuration:   20,
		BaseDifficulty: 90,
		Rarity:         RarityLegendary,
		MinLevel:       12,
	},
}
