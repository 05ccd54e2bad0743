/*
flag Package sets up cli flags shared across binaries

Usage:

	Flags listed in this package are shared across boundaries and binary-agnostic
	For binary dependent flags please define in their respective package
*/

package flag

import (
	"flag"
)

const (
	APIServer  = "api_server"
	FeedClient = "feed_client"
)

var (
	IsDevelopment bool
	ServiceName   string
	ListenAddr    string
	APIBaseURL    string
)

func init() {
	flag.BoolVar(&IsDevelopment, "dev", true, "set to true if the current run is for development. default value is true")
	flag.StringVar(&ServiceName, "service", APIServer, "'api_server' or 'feed_client'")
	flag.StringVar(&ListenAddr, "addr", ":8080", "listen address for the api server")
	flag.StringVar(&APIBaseURL, "api", "http://localhost:8080", "base url of the meme api")
}
