package configs

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

func init() {
	// .env is only expected in local development.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}
}

func EnvMongoURI() string {
	uri := os.Getenv("MONGO_URL")
	if uri == "" {
		uri = "mongodb://localhost:27017/ecommerce"
	}
	return uri
}

func EnvPort() string {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	return port
}

func EnvJwtSecret() string {
	return os.Getenv("JWT_SECRET")
}

func EnvCashfreeBaseURL() string {
	url := os.Getenv("CASHFREE_BASE_URL")
	if url == "" {
		url = "https://sandbox.cashfree.com"
	}
	return url
}

func EnvCashfreeClientId() string {
	return os.Getenv("CASHFREE_CLIENT_ID")
}

func EnvCashfreeClientSecret() string {
	return os.Getenv("CASHFREE_CLIENT_SECRET")
}
