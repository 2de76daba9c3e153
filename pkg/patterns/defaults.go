package patterns

import "github.com/solstat/solstat/pkg/metrics"

// DefaultRegistry returns the built-in Solana/DeFi idiom table. Keywords
// and globs come from naming conventions common across SPL and Anchor
// programs.
func DefaultRegistry() *Registry {
	return NewRegistry([]Definition{
		{
			ID:          "token_swap",
			Name:        "Token Swap",
			Description: "exchanges one asset for another through a pool or AMM curve",
			Risk:        metrics.RiskHigh,
			Keywords:    []string{"swap", "exchange", "trade"},
			NameGlobs:   []string{"swap_*", "*_swap", "exchange_*"},
		},
		{
			ID:          "liquidity_management",
			Name:        "Liquidity Management",
			Description: "adds or removes liquidity from a pool",
			Risk:        metrics.RiskHigh,
			Keywords:    []string{"liquidity", "pool", "deposit", "withdraw"},
			NameGlobs:   []string{"add_liquidity*", "remove_liquidity*", "deposit_*", "withdraw_*"},
		},
		{
			ID:          "token_transfer",
			Name:        "Token Transfer",
			Description: "moves tokens between accounts",
			Risk:        metrics.RiskMedium,
			Keywords:    []string{"transfer", "send"},
			NameGlobs:   []string{"transfer_*", "*_transfer", "send_*"},
		},
		{
			ID:          "minting",
			Name:        "Token Minting",
			Description: "creates new token supply",
			Risk:        metrics.RiskHigh,
			Keywords:    []string{"mint"},
			NameGlobs:   []string{"mint_*", "*_mint"},
		},
		{
			ID:          "burning",
			Name:        "Token Burning",
			Description: "destroys token supply",
			Risk:        metrics.RiskMedium,
			Keywords:    []string{"burn"},
			NameGlobs:   []string{"burn_*", "*_burn"},
		},
		{
			ID:          "staking",
			Name:        "Staking",
			Description: "locks tokens for rewards or governance weight",
			Risk:        metrics.RiskMedium,
			Keywords:    []string{"stake", "unstake", "reward"},
			NameGlobs:   []string{"stake_*", "unstake_*", "claim_reward*"},
		},
		{
			ID:          "lending",
			Name:        "Lending",
			Description: "borrows or repays against collateral",
			Risk:        metrics.RiskCritical,
			Keywords:    []string{"borrow", "repay", "collateral", "liquidate"},
			NameGlobs:   []string{"borrow_*", "repay_*", "liquidate_*"},
		},
		{
			ID:          "oracle_read",
			Name:        "Oracle Price Read",
			Description: "reads an external price feed",
			Risk:        metrics.RiskHigh,
			Keywords:    []string{"oracle", "price_feed", "pyth", "switchboard"},
			NameGlobs:   []string{"get_price*", "*_oracle"},
		},
		{
			ID:          "authority_management",
			Name:        "Authority Management",
			Description: "changes account ownership or signing authority",
			Risk:        metrics.RiskCritical,
			Keywords:    []string{"authority", "owner", "admin", "upgrade"},
			NameGlobs:   []string{"set_authority*", "transfer_ownership*", "update_admin*"},
		},
		{
			ID:          "account_initialization",
			Name:        "Account Initialization",
			Description: "creates and initializes program accounts",
			Risk:        metrics.RiskLow,
			Keywords:    []string{"initialize", "init", "create_account"},
			NameGlobs:   []string{"initialize*", "init_*", "create_*"},
		},
		{
			ID:          "fee_calculation",
			Name:        "Fee Calculation",
			Description: "computes protocol or trading fees",
			Risk:        metrics.RiskMedium,
			Keywords:    []string{"fee", "commission", "rate"},
			NameGlobs:   []string{"calculate_fee*", "*_fee"},
		},
		{
			ID:          "vesting",
			Name:        "Vesting Schedule",
			Description: "releases tokens over a time schedule",
			Risk:        metrics.RiskMedium,
			Keywords:    []string{"vest", "cliff", "unlock"},
			NameGlobs:   []string{"vest_*", "release_*"},
		},
	})
}
