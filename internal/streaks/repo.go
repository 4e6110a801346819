package streaks

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repo recomputes user streaks from session activity.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

// Recompute advances every user's streak in one statement: users with any
// session activity during the previous calendar day extend their run, everyone
// else resets to zero. Intended to run nightly just after midnight.
func (r *Repo) Recompute(ctx context.Context) (int64, error) {
	const q = `
update users u set
  streak = case when exists (
      select 1 from sessions s
      where s.user_id = u.id
        and s.updated_at >= date_trunc('day', now()) - interval '1 day'
        and s.updated_at <  date_trunc('day', now())
    ) then u.streak + 1 else 0 end,
  updated_at = now();`

	ct, err := r.db.Exec(ctx, q)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}
