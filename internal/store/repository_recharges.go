package store

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"bingo-hall/internal/docstore"
)

func (s *Store) InsertRecharge(ctx context.Context, houseID string, amount, commission, packageAdded decimal.Decimal, rechargeBy string) (*Recharge, error) {
	now := time.Now().UTC()
	rec := &Recharge{
		ID:                   NewID(),
		HouseID:              houseID,
		Amount:               amount,
		SuperAdminCommission: commission,
		PackageAdded:         packageAdded,
		RechargeBy:           rechargeBy,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := s.db.Insert(ctx, collRecharges, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Store) GetRecharge(ctx context.Context, id string) (*Recharge, error) {
	return findOne[Recharge](ctx, s.db, collRecharges, docstore.Query{"id": id})
}

func (s *Store) UpdateRecharge(ctx context.Context, rec *Recharge) error {
	rec.UpdatedAt = time.Now().UTC()
	n, err := s.db.Update(ctx, collRecharges, docstore.Query{"id": rec.ID}, rec)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) InsertAgentRecharge(ctx context.Context, agentID string, amount, commission, packageAdded decimal.Decimal, rechargeBy string) (*AgentRecharge, error) {
	now := time.Now().UTC()
	rec := &AgentRecharge{
		ID:                   NewID(),
		AgentID:              agentID,
		Amount:               amount,
		SuperAdminCommission: commission,
		PackageAdded:         packageAdded,
		RechargeBy:           rechargeBy,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := s.db.Insert(ctx, collAgentRecharges, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// ListRecharges is read-only: it joins each record with house and payer
// display names for dashboards. Time-range filtering happens in memory since
// the document store only matches on equality.
func (s *Store) ListRecharges(ctx context.Context, filter RechargeFilter) ([]RechargeRow, error) {
	q := docstore.Query{}
	if filter.HouseID != "" {
		q["house_id"] = filter.HouseID
	}
	if filter.RechargeBy != "" {
		q["recharge_by"] = filter.RechargeBy
	}
	recs, err := findAll[Recharge](ctx, s.db, collRecharges, q)
	if err != nil {
		return nil, err
	}

	houseNames := map[string]string{}
	accountNames := map[string]string{}
	rows := make([]RechargeRow, 0, len(recs))
	for _, rec := range recs {
		if !inRange(rec.CreatedAt, filter.From, filter.To) {
			continue
		}
		row := RechargeRow{Recharge: rec}
		row.HouseName, err = s.lookupHouseName(ctx, houseNames, rec.HouseID)
		if err != nil {
			return nil, err
		}
		row.PayerName, err = s.lookupAccountName(ctx, accountNames, rec.RechargeBy)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].CreatedAt.After(rows[j].CreatedAt) })
	return rows, nil
}

func (s *Store) ListAgentRecharges(ctx context.Context, filter AgentRechargeFilter) ([]AgentRechargeRow, error) {
	q := docstore.Query{}
	if filter.AgentID != "" {
		q["agent_id"] = filter.AgentID
	}
	recs, err := findAll[AgentRecharge](ctx, s.db, collAgentRecharges, q)
	if err != nil {
		return nil, err
	}

	accountNames := map[string]string{}
	rows := make([]AgentRechargeRow, 0, len(recs))
	for _, rec := range recs {
		if !inRange(rec.CreatedAt, filter.From, filter.To) {
			continue
		}
		row := AgentRechargeRow{AgentRecharge: rec}
		row.AgentName, err = s.lookupAccountName(ctx, accountNames, rec.AgentID)
		if err != nil {
			return nil, err
		}
		row.PayerName, err = s.lookupAccountName(ctx, accountNames, rec.RechargeBy)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].CreatedAt.After(rows[j].CreatedAt) })
	return rows, nil
}

func inRange(at, from, to time.Time) bool {
	if !from.IsZero() && at.Before(from) {
		return false
	}
	if !to.IsZero() && at.After(to) {
		return false
	}
	return true
}

func (s *Store) lookupHouseName(ctx context.Context, cache map[string]string, id string) (string, error) {
	if name, ok := cache[id]; ok {
		return name, nil
	}
	house, err := s.GetHouse(ctx, id)
	if err != nil {
		if err == ErrNotFound {
			cache[id] = ""
			return "", nil
		}
		return "", err
	}
	cache[id] = house.Name
	return house.Name, nil
}

func (s *Store) lookupAccountName(ctx context.Context, cache map[string]string, id string) (string, error) {
	if name, ok := cache[id]; ok {
		return name, nil
	}
	acc, err := s.GetAccount(ctx, id)
	if err != nil {
		if err == ErrNotFound {
			cache[id] = ""
			return "", nil
		}
		return "", err
	}
	cache[id] = acc.Name
	return acc.Name, nil
}
