package main

import "github.com/svara-ai/task-manager-api/internal/app"

func main() {
	app.InitDefaultLogger()
	app.MustReadEnv()
	app.MustInitApplicationLogger()

	app.MustConnectPostgres()
	defer app.DisconnectPostgres()
	app.MustRunMigrations()

	app.ConnectRedis()

	app.MustListenAndServeHTTP()
}
