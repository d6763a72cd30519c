package backends

import (
	"context"
	"empdir/internal/types"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
)

type BackendsTestSuite struct {
	suite.Suite
}

func TestBackendsTestSuite(t *testing.T) {
	suite.Run(t, new(BackendsTestSuite))
}

func (s *BackendsTestSuite) TestLogBackendHasNoRemoteSink() {
	n, err := RemoteNotifier(context.Background(), types.NotifyConfig{Backend: types.NotifyLog})
	s.NoError(err)
	s.Nil(n)

	n, err = RemoteNotifier(context.Background(), types.NotifyConfig{})
	s.NoError(err)
	s.Nil(n)
}

func (s *BackendsTestSuite) TestUnknownBackend() {
	_, err := RemoteNotifier(context.Background(), types.NotifyConfig{Backend: "fax"})
	s.True(errors.Is(err, types.ErrInvalidBackend))
}

func (s *BackendsTestSuite) TestSNSNeedsTopic() {
	_, err := RemoteNotifier(context.Background(), types.NotifyConfig{Backend: types.NotifySNS})
	s.True(errors.Is(err, types.ErrInvalidConfig))
}

func (s *BackendsTestSuite) TestSNSWithLocalEndpoint() {
	s.T().Setenv(SNSEndpointKey, "http://localhost:4566")
	s.T().Setenv("AWS_REGION", "us-east-1")
	n, err := RemoteNotifier(context.Background(), types.NotifyConfig{
		Backend:     types.NotifySNS,
		SNSTopicArn: "arn:aws:sns:us-east-1:000000000000:empdir",
	})
	s.NoError(err)
	s.NotNil(n)
}

func (s *BackendsTestSuite) TestRedisOptionsFromEnv() {
	s.T().Setenv(RedisHost, "cache.internal")
	s.T().Setenv(RedisPort, "6380")
	s.T().Setenv(RedisUser, "svc")
	s.T().Setenv(RedisPass, "secret")
	s.T().Setenv(RedisDBNum, "3")
	s.T().Setenv(RedisTLS, "true")

	opts, err := redisOptionsFromEnv()
	s.NoError(err)
	s.Equal("cache.internal:6380", opts.Addr)
	s.Equal("svc", opts.Username)
	s.Equal("secret", opts.Password)
	s.Equal(3, opts.DB)
	s.NotNil(opts.TLSConfig)

	s.T().Setenv(RedisDBNum, "three")
	_, err = redisOptionsFromEnv()
	s.Error(err)
}

func (s *BackendsTestSuite) TestRedisDefaults() {
	for _, k := range []string{RedisHost, RedisPort, RedisUser, RedisPass, RedisDBNum, RedisTLS} {
		s.T().Setenv(k, "")
	}
	opts, err := redisOptionsFromEnv()
	s.NoError(err)
	s.Equal("localhost:6379", opts.Addr)
	s.Equal(0, opts.DB)
	s.Nil(opts.TLSConfig)
}
