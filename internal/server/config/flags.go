package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/petcare/internal/flagx"
)

var serverFlags = []string{"-a", "-g", "-d", "-s", "-t", "-r", "-w", "-o", "-u", "-p", "-b", "-e"}

// parseFlags overlays command-line flags onto config.
//
//	-a string   HTTP bind address (":8080")
//	-g string   gRPC health bind address (":9090")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-r int      refresh token validity, minutes
//	-w int      expired token sweep interval, minutes
//	-o string   storage backend (s3 or minio)
//	-u string   object store access key
//	-p string   object store secret key
//	-b string   bucket name
//	-e string   object store endpoint
//
// Arguments other than these are ignored.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], serverFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "HTTP address and port")
	fs.StringVar(&config.GRPCHealthAddr, "g", config.GRPCHealthAddr, "gRPC health address and port")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	access := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")
	refresh := fs.Int("r", int(config.RefreshTokenValidityDuration.Minutes()), "refresh token validity (in minutes)")
	sweep := fs.Int("w", int(config.TokenSweepInterval.Minutes()), "expired token sweep interval (in minutes)")

	fs.StringVar(&config.StorageBackend, "o", config.StorageBackend, "storage backend: s3 or minio")
	fs.StringVar(&config.S3AccessKey, "u", config.S3AccessKey, "object store access key")
	fs.StringVar(&config.S3SecretKey, "p", config.S3SecretKey, "object store secret key")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "bucket")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "object store endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*access) * time.Minute
	config.RefreshTokenValidityDuration = time.Duration(*refresh) * time.Minute
	config.TokenSweepInterval = time.Duration(*sweep) * time.Minute
}
