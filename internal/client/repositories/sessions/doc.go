// Package sessions persists the provider session (access and refresh token
// plus the signed-in identity) between runs of the client.
//
// The cache holds at most one session: the table has a single row with
// id = 1. Save replaces it atomically, Clear removes it, and Load returns
// (nil, nil) when nothing is stored.
//
//	repo := sessions.NewSQLiteRepository(db)
//	_ = repo.Save(ctx, sess)
//	sess, _ := repo.Load(ctx)
//	_ = repo.Clear(ctx)
package sessions
