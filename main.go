package main

import "indicamais/internal/app"

// @title           IndicaMais API
// @version         1.0
// @description     Backend do programa de indicações: leads, repasses financeiros e comprovantes.
//
// @host      localhost:8080
// @BasePath  /
func main() {
	app.Run()
}
