package backends

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"empdir/internal/ports"
	"empdir/internal/pub"
	"empdir/internal/types"
	"fmt"
	"os"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const (
	NotifyBackendEnvKey = "NOTIFY_BACKEND"

	SNSEndpointKey = "SNS_ENDPOINT"
	SNSTopicArnKey = "SNS_TOPIC_ARN"

	RedisHost    = "REDIS_HOST"
	RedisPort    = "REDIS_PORT"
	RedisUser    = "REDIS_USER"
	RedisPass    = "REDIS_PASS"
	RedisTLS     = "REDIS_SSL"
	RedisDBNum   = "REDIS_DB_NUM"
	RedisChannel = "REDIS_CHANNEL"
)
const AmazonRootCA1PEM = `-----BEGIN CERTIFICATE-----
MIIDQTCCAimgAwIBAgITBmyfz5m/jAo54vB4ikPmljZbyjANBgkqhkiG9w0BAQsF
ADA5MQswCQYDVQQGEwJVUzEPMA0GA1UEChMGQW1hem9uMRkwFwYDVQQDExBBbWF6
b24gUm9vdCBDQSAxMB4XDTE1MDUyNjAwMDAwMFoXDTM4MDExNzAwMDAwMFowOTEL
MAkGA1UEBhMCVVMxDzANBgNVBAoTBkFtYXpvbjEZMBcGA1UEAxMQQW1hem9uIFJv
b3QgQ0EgMTCCASIwDQYJKoZIhvcNAQEBBQADggEPADCCAQoCggEBALJ4gHHKeNXj
ca9HgFB0fW7Y14h29Jlo91ghYPl0hAEvrAIthtOgQ3pOsqTQNroBvo3bSMgHFzZM
9O6II8c+6zf1tRn4SWiw3te5djgdYZ6k/oI2peVKVuRF4fn9tBb6dNqcmzU5L/qw
IFAGbHrQgLKm+a/sRxmPUDgH3KKHOVj4utWp+UhnMJbulHheb4mjUcAwhmahRWa6
VOujw5H5SNz/0egwLX0tdHA114gk957EWW67c4cX8jJGKLhD+rcdqsq08p8kDi1L
93FcXmn/6pUCyziKrlA4b9v7LWIbxcceVOF34GfID5yHI9Y/QCB/IIDEgEw+OyQm
jgSubJrIqg0CAwEAAaNCMEAwDwYDVR0TAQH/BAUwAwEB/zAOBgNVHQ8BAf8EBAMC
AYYwHQYDVR0OBBYEFIQYzIU07LwMlJQuCFmcx7IQTgoIMA0GCSqGSIb3DQEBCwUA
A4IBAQCY8jdaQZChGsV2USggNiMOruYou6r4lK5IpDB/G/wkjUu0yKGX9rbxenDI
U5PMCCjjmCXPI6T53iHTfIUJrU6adTrCC2qJeHZERxhlbI1Bjjt/msv0tadQ1wUs
N+gDS63pYaACbvXy8MWy7Vu33PqUXHeeE6V/Uq2V8viTO96LXFvKWlJbYK8U90vv
o/ufQJVtMVT8QtPHRh8jrdkPSHCa2XV4cdFyQzR1bldZwgJcJmApzyMZFo6IQ6XU
5MsI+yMRQ+hDKXJioaldXgjUkK642M4UwtBV8ob2xJNDd2ZhwLnoQdeXeGADbkpy
rqXRfboQnoZsG4q5WTP468SQvvG5
-----END CERTIFICATE-----`

// RemoteNotifier builds the notification sink selected by cfg.Backend.
// "log" (or empty) has no remote sink and returns (nil, nil): the terminal toaster and
// the log are always wired by the caller. "sns" needs cfg.SNSTopicArn; "redis" reads the
// connection settings from the REDIS_* environment variables.
func RemoteNotifier(ctx context.Context, cfg types.NotifyConfig) (ports.Notifier, error) {
	switch cfg.Backend {
	case "", types.NotifyLog:
		return nil, nil
	case types.NotifySNS:
		if cfg.SNSTopicArn == "" {
			return nil, types.Err(types.ErrInvalidConfig, nil, "sns backend needs a topic arn (%s)", SNSTopicArnKey)
		}
		cli, err := snsClientFromEnv(ctx)
		if err != nil {
			return nil, err
		}
		log.WithField("topic", cfg.SNSTopicArn).Debug("notifications go to SNS")
		return pub.NewSNS(cli, cfg.SNSTopicArn), nil
	case types.NotifyRedis:
		cli, err := redisClientFromEnv(ctx)
		if err != nil {
			return nil, err
		}
		channel := cfg.RedisChannel
		if channel == "" {
			channel = types.DefaultRedisChannel
		}
		log.WithField("channel", channel).Debug("notifications go to Redis")
		return pub.NewRedis(cli, channel, cfg.RedisHistory), nil
	default:
		return nil, types.Err(types.ErrInvalidBackend, nil, "notify backend %q", cfg.Backend)
	}
}

// snsClientFromEnv creates an SNS client from the default AWS config. SNS_ENDPOINT points
// it at a local mock with static test credentials.
func snsClientFromEnv(ctx context.Context) (*sns.Client, error) {
	var snsEndpoint *string
	se := os.Getenv(SNSEndpointKey)
	if se != "" {
		snsEndpoint = aws.String(se)
	}

	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return sns.NewFromConfig(awsCfg, func(o *sns.Options) {
		if snsEndpoint != nil {
			// local SNS mock (e.g. localstack) with static test credentials
			o.BaseEndpoint = snsEndpoint
			o.Region = getenv("AWS_REGION", "us-east-1")
			credProvider := credentials.NewStaticCredentialsProvider(
				getenv("AWS_ACCESS_KEY_ID", "test"),
				getenv("AWS_SECRET_ACCESS_KEY", "test"),
				"",
			)
			o.Credentials = credProvider
		}
	}), nil
}

// redisClientFromEnv creates a Redis client from environment variables, if any.
func redisClientFromEnv(ctx context.Context) (*redis.Client, error) {
	redisConfig, err := redisOptionsFromEnv()
	if err != nil {
		return nil, err
	}
	redisClient := redis.NewClient(redisConfig)
	_, err = redisClient.Ping(ctx).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}
	return redisClient, nil
}

func redisOptionsFromEnv() (*redis.Options, error) {
	host := getenv(RedisHost, "localhost")
	port := getenv(RedisPort, "6379")
	user := os.Getenv(RedisUser)
	pass := os.Getenv(RedisPass)
	tlsEnabled := parseBoolean(getenv(RedisTLS, "false"))
	dbNumStr := getenv(RedisDBNum, "0")
	dbNum, err := strconv.Atoi(dbNumStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Redis DB number: %w", err)
	}

	var tlsConfig *tls.Config
	if tlsEnabled {
		// Create a CA certificate pool and add our CA certificate
		caCerts := x509.NewCertPool()
		if !caCerts.AppendCertsFromPEM([]byte(AmazonRootCA1PEM)) {
			return nil, fmt.Errorf("failed to retrieve CA certificate")
		}
		tlsConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
			RootCAs:    caCerts,
		}
	}

	return &redis.Options{
		Addr:      fmt.Sprintf("%s:%s", host, port),
		Username:  user,
		Password:  pass,
		DB:        dbNum,
		TLSConfig: tlsConfig,
	}, nil
}

// getenv retrieves the value of the environment variable named by the key.
func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func parseBoolean(s string) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false
	}
	return b
}
