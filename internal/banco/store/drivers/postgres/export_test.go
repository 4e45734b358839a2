package postgres

import "context"

// Truncate empties every table, keeping the schema.
func Truncate(ctx context.Context, s *Store) error {
	_, err := s.pool.Exec(ctx, `TRUNCATE transfers, beneficiaries, users`)
	return err
}
