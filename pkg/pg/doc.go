// Package pg connects to PostgreSQL through a pgx/v5 connection pool and
// translates driver errors into API errors.
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	errmap.Register(renderer, pg.Errors)
//
// Errors maps pgx.ErrNoRows (and sql.ErrNoRows) to not_found, unique
// violations to conflict, and foreign key, not-null and invalid text
// representation violations to bad_request. Constraint and column names are
// exposed as metadata; server messages are not.
package pg
