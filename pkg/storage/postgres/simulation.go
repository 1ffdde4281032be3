package postgres

import (
	"context"
	"fmt"

	"armsim/pkg/domain"
	"armsim/pkg/storage"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const (
	simulationsTable = "simulations"
)

// StoreSimulations inserts simulations and returns the stored rows.
func (p *PgSQL) StoreSimulations(ctx context.Context, sims ...domain.Simulation) ([]domain.Simulation, error) {
	if len(sims) == 0 {
		return nil, nil
	}

	var result []PgSimulation
	if err := p.Builder.Insert(simulationsTable).
		Rows(domainSimulationsToPg(sims)).
		Returning(&PgSimulation{}).
		Executor().ScanStructsContext(ctx, &result); err != nil {
		return nil, fmt.Errorf("could not store simulations into pg: %w", err)
	}

	return pgSimulationsToDomain(result)
}

// UpdateSimulationByID applies updates to a live simulation. Attempts is
// incremented and updated_at refreshed on every call.
func (p *PgSQL) UpdateSimulationByID(ctx context.Context,
	id domain.SimulationID,
	updates storage.SimulationUpdates) (*domain.Simulation, error) {
	rec := goqu.Record{
		"updated_at": goqu.L("CURRENT_TIMESTAMP"),
		"attempts":   goqu.L("attempts + 1"),
		"status":     string(updates.Status),
	}
	if updates.Status == domain.RenderStatusFailed && updates.MaxAttempts > 0 {
		// stay in the current status until the retries are exhausted
		rec["status"] = goqu.Case().
			When(goqu.L("attempts + 1 >= ?", updates.MaxAttempts), string(domain.RenderStatusFailed)).
			Else(goqu.I("status"))
	}
	if updates.Rendering != nil {
		rec["rendering"] = updates.Rendering
	}
	if updates.LastError != nil {
		if *updates.LastError == "" {
			rec["last_error"] = goqu.L("NULL")
		} else {
			rec["last_error"] = *updates.LastError
		}
	}

	var row PgSimulation
	found, err := p.Builder.Update(simulationsTable).
		Set(rec).
		Where(
			goqu.I("id").Eq(uuid.UUID(id)),
			goqu.I("deleted_at").IsNull(),
		).
		Returning(&PgSimulation{}).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not update simulation in pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}

// DeleteSimulation soft-deletes a user's simulation and returns it.
func (p *PgSQL) DeleteSimulation(ctx context.Context,
	userID domain.UserID,
	id domain.SimulationID) (*domain.Simulation, error) {
	var row PgSimulation
	found, err := p.Builder.Update(simulationsTable).
		Set(goqu.Record{
			"deleted_at": goqu.L("CURRENT_TIMESTAMP"),
		}).
		Where(
			goqu.I("id").Eq(uuid.UUID(id)),
			goqu.I("user_id").Eq(uuid.UUID(userID)),
			goqu.I("deleted_at").IsNull(),
		).
		Returning(&PgSimulation{}).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not delete simulation in pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}

// UserSimulations returns a page of a user's simulations ordered by
// created_at DESC, id DESC.
func (p *PgSQL) UserSimulations(ctx context.Context,
	userID domain.UserID,
	mode domain.Mode,
	cursor *storage.Cursor,
	limit uint) (storage.UserSimulations, error) {
	w := []goqu.Expression{
		goqu.I("user_id").Eq(uuid.UUID(userID)),
		goqu.I("deleted_at").IsNull(),
	}
	if mode != "" {
		w = append(w, goqu.I("mode").Eq(string(mode)))
	}
	if cursor != nil {
		w = append(w, goqu.L("(created_at, id) < (?, ?)", cursor.CreatedAt, uuid.UUID(cursor.ID)))
	}

	// one extra row tells whether a next page exists
	ds := p.Builder.From(simulationsTable).
		Where(w...).
		Order(goqu.I("created_at").Desc(), goqu.I("id").Desc()).
		Limit(limit + 1)

	var rows []PgSimulation
	if err := ds.Executor().ScanStructsContext(ctx, &rows); err != nil {
		return storage.UserSimulations{}, fmt.Errorf("could not fetch user simulations from pg: %w", err)
	}

	var nextCursor *storage.Cursor
	if uint(len(rows)) > limit {
		rows = rows[:limit]
		if limit > 0 {
			last := rows[len(rows)-1]
			nextCursor = &storage.Cursor{CreatedAt: last.CreatedAt, ID: domain.SimulationID(last.ID)}
		}
	}

	sims, err := pgSimulationsToDomain(rows)
	if err != nil {
		return storage.UserSimulations{}, err
	}

	return storage.UserSimulations{
		Simulations: sims,
		NextCursor:  nextCursor,
	}, nil
}

// UserSimulationByID returns a user's live simulation by id.
func (p *PgSQL) UserSimulationByID(ctx context.Context,
	userID domain.UserID,
	id domain.SimulationID) (*domain.Simulation, error) {
	return p.simulationWhere(ctx,
		goqu.I("id").Eq(uuid.UUID(id)),
		goqu.I("user_id").Eq(uuid.UUID(userID)),
		goqu.I("deleted_at").IsNull(),
	)
}

// SimulationByID returns a live simulation by id regardless of its owner.
func (p *PgSQL) SimulationByID(ctx context.Context, id domain.SimulationID) (*domain.Simulation, error) {
	return p.simulationWhere(ctx,
		goqu.I("id").Eq(uuid.UUID(id)),
		goqu.I("deleted_at").IsNull(),
	)
}

func (p *PgSQL) simulationWhere(ctx context.Context, w ...goqu.Expression) (*domain.Simulation, error) {
	var row PgSimulation
	found, err := p.Builder.From(simulationsTable).
		Where(w...).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch simulation: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}
