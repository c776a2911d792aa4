// Command storefront runs and administers the storefront service.
//
//	storefront serve               # HTTP + gRPC until SIGINT/SIGTERM
//	storefront migrate             # run pending migrations
//	storefront migrate:rollback    # undo the last batch
//	storefront migrate:status
//	storefront seed                # accounts, variant types, demo catalog
//	storefront seed --only catalog
//	storefront route:list
//
// Configuration comes from config/app.json, .env and the environment.
package main
