//go:build integration

// Package testdb provides a PostgreSQL database for integration tests.
//
// The first call to GetTestDBWithT starts one postgres container for the
// whole test binary with testcontainers-go and applies the embedded goose
// migrations. Setting VOCABDECK_TEST_DATABASE_URL uses an existing database
// instead. Tests isolate themselves with WithTx, which rolls back on cleanup:
//
//	func TestMyFeature(t *testing.T) {
//	    db := testdb.GetTestDBWithT(t)
//	    testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	        users := postgres.NewPostgresUserStore(tx, nil)
//	        // ...
//	    })
//	}
package testdb
