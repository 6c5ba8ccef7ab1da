package main

import (
	"net/http"
	"os"
	"time"

	"github.com/Sameena10-06/community-chat-hub/auth"
	"github.com/Sameena10-06/community-chat-hub/filestore"
	"github.com/Sameena10-06/community-chat-hub/server/handlers"
	"github.com/Sameena10-06/community-chat-hub/server/middlewares"
	"github.com/Sameena10-06/community-chat-hub/stream"
	. "github.com/Sameena10-06/community-chat-hub/utils"
	"github.com/Sameena10-06/community-chat-hub/utils/dotenv"
	. "github.com/Sameena10-06/community-chat-hub/utils/flag"
	. "github.com/Sameena10-06/community-chat-hub/utils/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const defaultTokenDuration = 24 * time.Hour

func init() {
	Log.Info("api server initialized")
}

// newFileStore picks the attachment backend: S3 in production, a local
// folder served under /files everywhere else.
func newFileStore(router *gin.Engine) filestore.UploadFileStore {
	if !*IsDevelopment {
		store, err := filestore.NewS3FileStore(
			os.Getenv("S3_FILE_BUCKET"), os.Getenv("S3_PUBLIC_URL_PREFIX"))
		if err != nil {
			Log.Fatal("cannot initialize s3 file store: ", err)
		}
		return store
	}

	store, err := filestore.NewLocalFileStore("uploads", "http://localhost:8080")
	if err != nil {
		Log.Fatal("cannot initialize local file store: ", err)
	}
	router.Static("/files", store.FolderName())
	return store
}

func newTokenDenylist() TokenDenylist {
	if *IsDevelopment {
		return NewMemoryTokenDenylist()
	}
	denylist, err := GetRedisTokenDenylist()
	if err != nil {
		Log.Fatal("cannot connect to redis: ", err)
	}
	return denylist
}

func main() {
	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}

	db, err := GetDBConnection()
	if err != nil {
		Log.Fatal("cannot connect to database: ", err)
	}
	DatabaseSetupAndMigration(db)

	// Default With the Logger and Recovery middleware already attached
	router := gin.Default()
	router.Use(cors.Default())

	feed := stream.NewChangeFeed()
	defer feed.Close()

	store := newFileStore(router)
	defer store.CleanUp()

	tokens := auth.NewTokenManager(os.Getenv("TOKEN_SECRET"), defaultTokenDuration)
	denylist := newTokenDenylist()
	api := handlers.NewAPI(db, feed, store, tokens, denylist)

	limiter := middlewares.NewLimiterStore(120, 20)

	AddAuthRoutes(rateLimitedGroup(router.Group("/"), limiter), api)

	protected := router.Group("/")
	protected.Use(middlewares.JWT(tokens, denylist))
	AddAPIRoutes(rateLimitedGroup(protected, limiter), api, feed)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	Log.Info("api server starts up")
	router.Run(":8080")
}
