package main

import "github.com/lloydmeta/esversions/app/cmd"

func main() {
	cmd.Execute()
}

// @title ES Versions API
// @version 0.0.1
// @description Which ECMAScript versions had been ratified by when

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @securityDefinitions.basic BasicAuth
// @BasePath /
