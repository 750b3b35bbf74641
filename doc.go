// Package dbinit wires the environment loader and the database layer into a
// single startup sequence: read .env, validate configuration, build the pool.
//
//	rt, err := dbinit.Bootstrap()
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer rt.Close()
//	if res := rt.CheckHealth(ctx); !res.Connected {
//		log.Println(res.Error)
//	}
package dbinit
