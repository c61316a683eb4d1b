package services

import "context"

// Stats is the operator's view of the platform: how many transfers completed
// and how much the system earned on them.
type Stats struct {
	TransactionCount int64 `json:"transaction_count"`
	TotalProfitSats  int64 `json:"total_profit_sats"`
}

// StatisticsService answers administrative queries. Access is limited to a
// fixed, externally configured set of admin keys; non-members learn nothing
// beyond "unauthorized".
type StatisticsService struct {
	transactions TransactionStore
	profits      ProfitStore
	adminKeys    map[string]struct{}
}

func NewStatisticsService(transactions TransactionStore, profits ProfitStore, adminKeys []string) *StatisticsService {
	keys := make(map[string]struct{}, len(adminKeys))
	for _, key := range adminKeys {
		keys[key] = struct{}{}
	}
	return &StatisticsService{transactions: transactions, profits: profits, adminKeys: keys}
}

func (s *StatisticsService) IsAdmin(adminKey string) bool {
	_, ok := s.adminKeys[adminKey]
	return ok
}

func (s *StatisticsService) Statistics(ctx context.Context, adminKey string) (Stats, error) {
	if !s.IsAdmin(adminKey) {
		return Stats{}, ErrUnauthorized
	}
	count, err := s.transactions.Count(ctx)
	if err != nil {
		return Stats{}, err
	}
	total, err := s.profits.Total(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Stats{TransactionCount: count, TotalProfitSats: total}, nil
}
