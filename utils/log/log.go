package log

import (
	"os"

	"github.com/Sameena10-06/community-chat-hub/utils/dotenv"
	"github.com/Sameena10-06/community-chat-hub/utils/flag"
	"github.com/sirupsen/logrus"
)

// global accessible logger
var (
	logger *logrus.Logger
	Log    *logrus.Entry
)

// This init function is only for testing cases, where the entry point is not
// main function. Unit test will fail with nil pointer dereference if we don't
// init here.
func init() {
	InitLogger()
}

func InitLogger() {
	logger = logrus.New()

	// Structured JSON in prod for log collection, plain text on stderr
	// otherwise for better readability.
	if os.Getenv("CAMPUSHUB_ENV") == dotenv.ProdEnv {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	logger.SetOutput(os.Stderr)

	Log = logger.WithFields(
		logrus.Fields{"service": *flag.ServiceName, "is_development": os.Getenv("CAMPUSHUB_ENV") != dotenv.ProdEnv},
	)
}
