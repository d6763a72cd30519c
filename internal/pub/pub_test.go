package pub

import (
	"context"
	"empdir/internal/ports"
	"empdir/internal/types"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/suite"
)

type PubTestSuite struct {
	suite.Suite
}

func TestPubTestSuite(t *testing.T) {
	suite.Run(t, new(PubTestSuite))
}

type recorder struct {
	got []types.Notification
	err error
}

func (r *recorder) Notify(_ context.Context, n types.Notification) error {
	r.got = append(r.got, n)
	return r.err
}

type fakeSNS struct {
	inputs []*sns.PublishInput
}

func (f *fakeSNS) Publish(_ context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.inputs = append(f.inputs, in)
	return &sns.PublishOutput{}, nil
}

func (s *PubTestSuite) TestFanoutDeliversToAllAndJoinsErrors() {
	boom := errors.New("boom")
	a := &recorder{err: boom}
	b := &recorder{}
	f := Fanout{a, nil, b}

	err := f.Notify(context.Background(), types.Success("Employee added successfully"))
	s.True(errors.Is(err, boom))
	s.Len(a.got, 1)
	s.Len(b.got, 1)
	s.Equal("Success", b.got[0].Title)

	s.NoError(Fanout{}.Notify(context.Background(), types.Failure("x")))
}

func (s *PubTestSuite) TestLogLevels() {
	logger, hook := test.NewNullLogger()
	var n ports.Notifier = NewLog(logger)

	s.NoError(n.Notify(context.Background(), types.Failure("Failed to delete employee")))
	s.Equal(log.ErrorLevel, hook.LastEntry().Level)
	s.Equal("Failed to delete employee", hook.LastEntry().Message)
	s.Equal(types.SeverityError, hook.LastEntry().Data["severity"])

	s.NoError(n.Notify(context.Background(), types.Success("Employee deleted successfully")))
	s.Equal(log.InfoLevel, hook.LastEntry().Level)
	s.Len(hook.AllEntries(), 2)
}

func (s *PubTestSuite) TestSNSPayload() {
	fake := &fakeSNS{}
	n := NewSNS(fake, "arn:aws:sns:us-east-1:000000000000:empdir")
	note := types.Failure("Failed to load employees. Please try again.")
	s.NoError(n.Notify(context.Background(), note))

	s.Len(fake.inputs, 1)
	in := fake.inputs[0]
	s.Equal("arn:aws:sns:us-east-1:000000000000:empdir", *in.TopicArn)
	s.Equal("Error", *in.Subject)
	s.Equal("error", *in.MessageAttributes["severity"].StringValue)

	var decoded types.Notification
	s.NoError(json.Unmarshal([]byte(*in.Message), &decoded))
	s.Equal(note.Message, decoded.Message)
	s.Equal(types.SeverityError, decoded.Severity)
}

// TestRedisHistory needs a Redis server at TEST_REDIS_ADDR, e.g. localhost:46379.
func (s *PubTestSuite) TestRedisHistory() {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		s.T().Skip("TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	cli := redis.NewClient(&redis.Options{Addr: addr})
	defer func() {
		_ = cli.Close()
	}()
	channel := "empdir-test:" + time.Now().Format("150405.000000")
	defer cli.Del(ctx, channel+":recent")

	sub := cli.Subscribe(ctx, channel)
	defer func() {
		_ = sub.Close()
	}()
	_, err := sub.Receive(ctx)
	s.Require().NoError(err)

	r := NewRedis(cli, channel, 2)
	for _, msg := range []string{"one", "two", "three"} {
		s.NoError(r.Notify(ctx, types.Success(msg)))
	}

	recent, err := r.Recent(ctx, 10)
	s.NoError(err)
	s.Len(recent, 2)
	s.Equal("three", recent[0].Message)
	s.Equal("two", recent[1].Message)

	msg, err := sub.ReceiveMessage(ctx)
	s.Require().NoError(err)
	var first types.Notification
	s.NoError(json.Unmarshal([]byte(msg.Payload), &first))
	s.Equal("one", first.Message)
}
