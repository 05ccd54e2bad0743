package main

import (
	stdflag "flag"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/souhailmerroun/memefeed/server"
	"github.com/souhailmerroun/memefeed/utils/dotenv"
	Flag "github.com/souhailmerroun/memefeed/utils/flag"
	Logger "github.com/souhailmerroun/memefeed/utils/log"
)

func jwtSecret() []byte {
	secret := os.Getenv("MEMEFEED_JWT_SECRET")
	if secret == "" {
		secret = "dev-secret"
	}
	return []byte(secret)
}

func main() {
	stdflag.Parse()

	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}
	Logger.InitLogger()

	store := server.NewStore()
	server.Seed(store)

	// Default with the Logger and Recovery middleware already attached
	router := gin.Default()
	router.Use(cors.Default())
	server.New(store, jwtSecret()).Register(router)

	Logger.Log.Info("meme api server starts up")
	if err := router.Run(Flag.ListenAddr); err != nil {
		Logger.Log.WithError(err).Fatal("meme api server exited")
	}
}
