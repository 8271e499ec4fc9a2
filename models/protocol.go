package models

// Protocol is a battle target on the grid. Ownership flips from false to true
// only through a battle victory against this protocol and never reverts on
// its own.
type Protocol struct {
	ID          string `gorm:"primaryKey" json:"id"` // slug of the name
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Type        string `json:"type" gorm:"type:varchar(32);index"` // lending, dex, derivatives, yield
	TVL         int64  `json:"tvl" gorm:"default:0"`
	Description string `json:"description" gorm:"type:text"`

	Leadership        int `json:"leadership" gorm:"default:0"`
	RiskManagement    int `json:"risk_management" gorm:"default:0"`
	CommunityBuilding int `json:"community_building" gorm:"default:0"`
	EconomicStrategy  int `json:"economic_strategy" gorm:"default:0"`

	PlayerOwned bool    `json:"player_owned" gorm:"default:false"`
	OwnerID     *string `json:"owner_id,omitempty" gorm:"index"` // capturing player's wallet

	Timestamps
}

// Traits returns the protocol's trait block.
func (p *Protocol) Traits() CommanderTraits {
	return CommanderTraits{
		Leadership:        p.Leadership,
		RiskManagement:    p.RiskManagement,
		CommunityBuilding: p.CommunityBuilding,
		EconomicStrategy:  p.EconomicStrategy,
	}
}

// SeedProtocols is the initial protocol registry, inserted at boot when the
// protocols table is empty. The sync worker keeps TVL figures fresh afterwards.
var SeedProtocols = []Protocol{
	{
		Name: "AaveDAO", Type: "lending", TVL: 12_500_000_000,
		Leadership: 85, RiskManagement: 92, CommunityBuilding: 78, EconomicStrategy: 88,
		Description: "Decentralized lending protocol with focus on risk management",
	},
	{
		Name: "Uniswap", Type: "dex", TVL: 8_200_000_000,
		Leadership: 90, RiskManagement: 75, CommunityBuilding: 95, EconomicStrategy: 85,
		Description: "Leading decentralized exchange protocol",
	},
	{
		Name: "Compound", Type: "lending", TVL: 6_800_000_000,
		Leadership: 80, RiskManagement: 88, CommunityBuilding: 72, EconomicStrategy: 82,
		Description: "Algorithmic money markets protocol",
	},
	{
		Name: "Curve", Type: "dex", TVL: 5_900_000_000,
		Leadership: 75, RiskManagement: 95, CommunityBuilding: 68, EconomicStrategy: 92,
		Description: "Stable coin focused DEX with high capital efficiency",
	},
	{
		Name: "MakerDAO", Type: "lending", TVL: 4_500_000_000,
		Leadership: 88, RiskManagement: 90, CommunityBuilding: 85, EconomicStrategy: 95,
		Description: "Decentralized autonomous organization governing the Dai stablecoin",
	},
	{
		Name: "dYdX", Type: "derivatives", TVL: 3_800_000_000,
		Leadership: 85, RiskManagement: 85, CommunityBuilding: 70, EconomicStrategy: 88,
		Description: "Decentralized derivatives trading protocol",
	},
	{
		Name: "Balancer", Type: "dex", TVL: 2_100_000_000,
		Leadership: 72, RiskManagement: 78, CommunityBuilding: 80, EconomicStrategy: 75,
		Description: "Automated portfolio manager and trading protocol",
	},
	{
		Name: "Yearn", Type: "yield", TVL: 1_800_000_000,
		Leadership: 78, RiskManagement: 82, CommunityBuilding: 88, EconomicStrategy: 92,
		Description: "Yield farming aggregator protocol",
	},
	{
		Name: "Synthetix", Type: "derivatives", TVL: 1_200_000_000,
		Leadership: 82, RiskManagement: 80, CommunityBuilding: 75, EconomicStrategy: 85,
		Description: "Synthetic asset issuance protocol",
	},
	{
		Name: "SushiSwap", Type: "dex", TVL: 900_000_000,
		Leadership: 70, RiskManagement: 68, CommunityBuilding: 90, EconomicStrategy: 78,
		Description: "Community-driven decentralized exchange",
	},
}
