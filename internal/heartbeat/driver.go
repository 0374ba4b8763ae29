// Package heartbeat runs the beat loop: draw a random number, serialize the
// fixed record, check the date pattern, print all three, then pause.
package heartbeat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lacquerai/heartbeat/internal/pattern"
	"github.com/lacquerai/heartbeat/internal/record"
	"github.com/lacquerai/heartbeat/internal/sample"
)

const (
	// Greeting prefixes the random number line.
	Greeting = "Hello World from Rust!"

	// DefaultInterval is the pause between two beats.
	DefaultInterval = 5 * time.Second
)

// Config controls the loop.
type Config struct {
	// Interval is the minimum pause between the end of one beat and the
	// start of the next.
	Interval time.Duration
	// Count stops the loop after that many beats. Zero runs forever.
	Count int
}

// DefaultConfig returns a config that beats forever every 5 seconds.
func DefaultConfig() Config {
	return Config{
		Interval: DefaultInterval,
	}
}

// Validate checks that config values are usable.
func (c Config) Validate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %v", c.Interval)
	}
	if c.Count < 0 {
		return fmt.Errorf("count must be non-negative, got %d", c.Count)
	}
	return nil
}

// Beat is the outcome of one iteration.
type Beat struct {
	Sequence  uint64    `json:"sequence" yaml:"sequence"`
	Sample    uint8     `json:"sample" yaml:"sample"`
	Record    string    `json:"record" yaml:"record"`
	DateMatch bool      `json:"date_match" yaml:"date_match"`
	At        time.Time `json:"at" yaml:"at"`
}

// Observer is called with every beat after its lines are written.
type Observer func(Beat)

// Sleeper blocks for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// Indicator is shown while the driver pauses between beats.
type Indicator interface {
	SetSuffix(suffix string)
	Start()
	Stop()
}

// Driver runs beats in sequence on the calling goroutine.
type Driver struct {
	config    Config
	out       io.Writer
	source    sample.Source
	dateExpr  string
	date      *regexp.Regexp
	sleep     Sleeper
	indicator Indicator
	observers []Observer
	logger    zerolog.Logger
	seq       atomic.Uint64
}

// Option configures a Driver.
type Option func(*Driver)

// WithSource replaces the entropy-seeded random source.
func WithSource(src sample.Source) Option {
	return func(d *Driver) {
		d.source = src
	}
}

// WithSleeper replaces the pause implementation.
func WithSleeper(s Sleeper) Option {
	return func(d *Driver) {
		d.sleep = s
	}
}

// WithObserver subscribes fn to every beat.
func WithObserver(fn Observer) Option {
	return func(d *Driver) {
		d.observers = append(d.observers, fn)
	}
}

// WithIndicator shows ind during pauses.
func WithIndicator(ind Indicator) Option {
	return func(d *Driver) {
		d.indicator = ind
	}
}

// WithLogger sets the driver's logger.
func WithLogger(l zerolog.Logger) Option {
	return func(d *Driver) {
		d.logger = l
	}
}

// WithDateExpr replaces pattern.Date with expr, compiled by New.
func WithDateExpr(expr string) Option {
	return func(d *Driver) {
		d.dateExpr = expr
	}
}

// New builds a driver writing to out. It fails if cfg is invalid or a pattern
// given with WithDateExpr does not compile.
func New(cfg Config, out io.Writer, opts ...Option) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid heartbeat config: %w", err)
	}

	d := &Driver{
		config: cfg,
		out:    out,
		source: sample.NewSource(),
		date:   pattern.Date,
		sleep:  SleepContext,
		logger: log.With().Str("component", "heartbeat").Logger(),
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.dateExpr != "" {
		date, err := pattern.Compile(d.dateExpr)
		if err != nil {
			return nil, err
		}
		d.date = date
	}

	return d, nil
}

// Beat runs one iteration and writes its three lines.
func (d *Driver) Beat() (Beat, error) {
	n := d.source.Uint8()
	if _, err := fmt.Fprintf(d.out, "%s Random number: %d\n", Greeting, n); err != nil {
		return Beat{}, fmt.Errorf("writing sample: %w", err)
	}

	data, err := record.Encode(record.Default(), record.FormatJSON)
	if err != nil {
		return Beat{}, fmt.Errorf("serializing record: %w", err)
	}
	if _, err := fmt.Fprintf(d.out, "Serialized Person: %s\n", data); err != nil {
		return Beat{}, fmt.Errorf("writing record: %w", err)
	}

	match := d.date.MatchString(pattern.DateLiteral)
	if _, err := fmt.Fprintf(d.out, "Date match: %t\n", match); err != nil {
		return Beat{}, fmt.Errorf("writing date match: %w", err)
	}

	beat := Beat{
		Sequence:  d.seq.Add(1),
		Sample:    n,
		Record:    string(data),
		DateMatch: match,
		At:        time.Now(),
	}

	d.logger.Debug().
		Uint64("sequence", beat.Sequence).
		Uint8("sample", beat.Sample).
		Int("record_bytes", len(data)).
		Bool("date_match", beat.DateMatch).
		Msg("Beat")

	for _, fn := range d.observers {
		fn(beat)
	}

	return beat, nil
}

// Run beats until Count is reached, an error occurs, or ctx is done. With a
// zero Count and a context that is never cancelled it does not return.
func (d *Driver) Run(ctx context.Context) error {
	d.logger.Info().
		Dur("interval", d.config.Interval).
		Int("count", d.config.Count).
		Msg("Starting heartbeat")

	for i := 1; d.config.Count == 0 || i <= d.config.Count; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		if _, err := d.Beat(); err != nil {
			d.logger.Error().Err(err).Msg("Beat failed")
			return err
		}

		if i == d.config.Count {
			break
		}

		if err := d.pause(ctx); err != nil {
			if IsCancelled(err) {
				d.logger.Info().Uint64("beats", d.Beats()).Msg("Heartbeat stopped")
			}
			return err
		}
	}

	d.logger.Info().Uint64("beats", d.Beats()).Msg("Heartbeat finished")
	return nil
}

// Beats returns the number of beats completed so far.
func (d *Driver) Beats() uint64 {
	return d.seq.Load()
}

func (d *Driver) pause(ctx context.Context) error {
	if d.indicator != nil {
		d.indicator.SetSuffix(fmt.Sprintf(" next beat in %s", d.config.Interval))
		d.indicator.Start()
		defer d.indicator.Stop()
	}

	return d.sleep(ctx, d.config.Interval)
}

// SleepContext blocks for d or until ctx is done, returning ctx's error in
// the latter case.
func SleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// IsCancelled reports whether err is a context cancellation or deadline.
func IsCancelled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
