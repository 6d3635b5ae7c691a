package checker

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/khanhnv2901/laberator-checker/internal/flagid"
	"github.com/khanhnv2901/laberator-checker/internal/generator"
	"github.com/khanhnv2901/laberator-checker/internal/label"
	"github.com/khanhnv2901/laberator-checker/internal/session"
	consts "github.com/khanhnv2901/laberator-checker/internal/shared/constants"
	errs "github.com/khanhnv2901/laberator-checker/internal/shared/errors"
	"github.com/khanhnv2901/laberator-checker/internal/status"
	"go.uber.org/zap"
)

// createOK is the only create response that confirms a stored label.
const createOK = "true"

// Config controls how the checker reaches the service.
type Config struct {
	Port        int
	Timeout     time.Duration
	ChannelPath string
	Generator   generator.Generator
	Logger      *zap.SugaredLogger
}

// Checker runs the put and get pipelines against one service.
type Checker struct {
	cfg  Config
	auth *AuthClient
	log  *zap.SugaredLogger
}

// New fills in defaults for unset fields and returns a Checker.
func New(cfg Config) *Checker {
	if cfg.Port == 0 {
		cfg.Port = consts.DefaultPort
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = consts.DefaultTimeout
	}
	if cfg.ChannelPath == "" {
		cfg.ChannelPath = consts.DefaultChannelPath
	}
	if cfg.Generator == nil {
		cfg.Generator = generator.Random{}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop().Sugar()
	}
	return &Checker{
		cfg:  cfg,
		auth: NewAuthClient(cfg.Timeout, cfg.Generator.Headers),
		log:  cfg.Logger,
	}
}

// Put registers a fresh account, plants flag as a label and returns the
// identifier get needs to verify it later.
func (c *Checker) Put(ctx context.Context, host, flag string) (flagid.ID, error) {
	target, err := ParseTarget(host, c.cfg.Port)
	if err != nil {
		return flagid.ID{}, status.Internal("put", err)
	}

	login, password := c.cfg.Generator.Login(), c.cfg.Generator.Password()
	c.log.Debugw("registering", "target", target.Addr(), "login", login)
	sess, err := c.auth.Register(ctx, target, login, password)
	if err != nil {
		return flagid.ID{}, err
	}

	font, size := c.cfg.Generator.LabelStyle()
	err = c.withChannel(ctx, target, func(ch *Channel) error {
		c.log.Debugw("creating label", "font", font, "size", size, "cookies", sess.Raw())
		resp, err := ch.Create(ctx, sess, flag, font, size)
		if err != nil {
			return err
		}
		if resp != createOK {
			return status.Semantic("create", fmt.Errorf("%w: response %q", errs.ErrLabelNotCreated, truncate(resp)))
		}
		return nil
	})
	if err != nil {
		return flagid.ID{}, err
	}

	return flagid.ID{
		Login:    login,
		Password: password,
		Hash:     label.ComputeHash(flag, font, size),
	}, nil
}

// Get decodes rawID, logs in with the stored credentials and verifies that
// the only listed label still carries flag and matches the stored hash.
func (c *Checker) Get(ctx context.Context, host, rawID, flag string) error {
	id, err := flagid.Decode(rawID)
	if err != nil {
		return status.Internal("decode flag id", err)
	}
	target, err := ParseTarget(host, c.cfg.Port)
	if err != nil {
		return status.Internal("get", err)
	}

	c.log.Debugw("logging in", "target", target.Addr(), "login", id.Login)
	sess, err := c.auth.Login(ctx, target, id.Login, id.Password)
	if err != nil {
		return err
	}

	var records []label.Record
	err = c.withChannel(ctx, target, func(ch *Channel) error {
		resp, err := ch.List(ctx, sess, 0)
		if err != nil {
			return err
		}
		c.log.Debugw("list response", "response", truncate(resp))
		records, err = label.DecodeList([]byte(resp))
		if err != nil {
			return status.Protocol("list", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	return verifyRecords(records, id.Hash, flag, sess)
}

func verifyRecords(records []label.Record, expectedHash, flag string, sess session.Session) error {
	if len(records) != 1 {
		return status.SemanticContent("list", fmt.Errorf("%w: got %d for cookies %q", errs.ErrUnexpectedLabelCount, len(records), sess.Raw()))
	}
	l, err := records[0].Label()
	if err != nil {
		return status.Semantic("list", fmt.Errorf("%w: %s", err, records[0]))
	}
	if err := label.Verify(expectedHash, flag, l); err != nil {
		return status.Integrity("verify", err)
	}
	return nil
}

// withChannel opens the command channel, runs fn and closes the channel on
// every path out.
func (c *Checker) withChannel(ctx context.Context, target Target, fn func(*Channel) error) error {
	ch, err := OpenChannel(ctx, target.ChannelURL(c.cfg.ChannelPath), c.cfg.Timeout, http.Header{})
	if err != nil {
		return err
	}
	defer ch.Close()
	return fn(ch)
}

func truncate(s string) string {
	if len(s) <= consts.ResponseLogLimitBytes {
		return s
	}
	return s[:consts.ResponseLogLimitBytes] + "..."
}
