package main

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/sky-flux/factdrill"
	"github.com/sky-flux/factdrill/reveal"
	"github.com/sky-flux/factdrill/stats"
)

var errTimeUp = errors.New("time is up")

// sessionFlags override the fields of a saved SessionConfig.
type sessionFlags struct {
	numbers     []int
	count       int
	minutes     int
	timed       bool
	reveal      bool
	revealDelay int
	single      bool
}

func (f *sessionFlags) register(fl *pflag.FlagSet) {
	fl.IntSliceVarP(&f.numbers, "numbers", "n", nil, "operands to train, e.g. 3,7,8")
	fl.IntVarP(&f.count, "count", "c", 0, "number of problems")
	fl.IntVarP(&f.minutes, "minutes", "m", 0, "time budget in minutes (implies --timed)")
	fl.BoolVar(&f.timed, "timed", false, "end after a time budget instead of a problem count")
	fl.BoolVar(&f.reveal, "reveal", false, "reveal the answer if none is given in time")
	fl.IntVar(&f.revealDelay, "reveal-delay", 0, "seconds before the answer is revealed")
	fl.BoolVar(&f.single, "single-attempt", false, "move on after a wrong answer instead of asking again")
}

// apply returns base with the flags the user set applied on top.
func (f *sessionFlags) apply(fl *pflag.FlagSet, base factdrill.SessionConfig) factdrill.SessionConfig {
	cfg := base
	if fl.Changed("numbers") {
		cfg.Operands = f.numbers
	}
	if fl.Changed("count") {
		cfg.ProblemCount = f.count
		cfg.Mode = factdrill.FixedCount
	}
	if fl.Changed("timed") {
		cfg.Mode = factdrill.FixedCount
		if f.timed {
			cfg.Mode = factdrill.TimeBoxed
		}
	}
	if fl.Changed("minutes") {
		cfg.DurationMinutes = f.minutes
		cfg.Mode = factdrill.TimeBoxed
	}
	if fl.Changed("reveal") {
		cfg.RevealAnswer = f.reveal
	}
	if fl.Changed("reveal-delay") {
		cfg.RevealDelaySeconds = f.revealDelay
	}
	if fl.Changed("single-attempt") {
		cfg.SingleAttempt = f.single
	}
	return cfg
}

type drillFlags struct {
	sessionFlags
	lazy bool
	seed int64
}

func newDrillCmd(a *app) *cobra.Command {
	var f drillFlags
	cmd := &cobra.Command{
		Use:   "drill",
		Short: "Run a drill session",
		Long: `Run a drill session with the learner's saved settings. Flags override
the saved settings for this session only. Type an answer and press Enter;
an empty line or end of input stops the session early.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDrill(cmd, a, &f)
		},
	}
	fl := cmd.Flags()
	f.register(fl)
	fl.BoolVar(&f.lazy, "lazy", false, "pick each problem when it is reached, using answers so far")
	fl.Int64Var(&f.seed, "seed", 0, "random seed (0: seeded from the clock)")
	return cmd
}

func runDrill(cmd *cobra.Command, a *app, f *drillFlags) error {
	ctx := cmd.Context()

	u, known, err := a.learner(ctx)
	if err != nil {
		return err
	}
	base := factdrill.DefaultSessionConfig()
	if known {
		base = u.Settings
	}
	cfg := f.apply(cmd.Flags(), base)
	if err := cfg.Validate(); err != nil {
		return err
	}

	sess, err := factdrill.NewSession(factdrill.EngineConfig{
		Seed:           f.seed,
		LazyGeneration: f.lazy,
		Logger:         a.logger,
	})
	if err != nil {
		return err
	}
	if known {
		sess.OnFinish(func(r factdrill.SessionResult) {
			// The drill context may already be cancelled by an interrupt.
			if err := a.stats.AddSession(context.WithoutCancel(ctx), u.ID, r); err != nil {
				a.logger.Error("record session", "user", u.ID, "err", err)
			}
		})
	}

	d := &driller{cmd: cmd, sess: sess, cfg: cfg}
	if err := d.run(ctx, readLines(cmd.InOrStdin())); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	d.report()
	return nil
}

// readLines forwards input lines until EOF. It is left running on exit:
// a read from a terminal cannot be interrupted.
func readLines(r io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			lines <- sc.Text()
		}
	}()
	return lines
}

type driller struct {
	cmd  *cobra.Command
	sess *factdrill.Session
	cfg  factdrill.SessionConfig
}

// run drives the session until it finishes, input ends, the time budget
// runs out or ctx is cancelled. The session is finished on return.
func (d *driller) run(ctx context.Context, lines <-chan string) error {
	if err := d.sess.Start(d.cfg, time.Now()); err != nil {
		return err
	}
	defer func() { d.sess.Stop(time.Now()) }()

	if d.cfg.Mode == factdrill.TimeBoxed {
		printf(d.cmd, "Drill of %v on %v. Go!\n", d.cfg.Duration(), d.cfg.Operands)
	} else {
		printf(d.cmd, "Drill of %d problems on %v. Go!\n", d.cfg.ProblemCount, d.cfg.Operands)
	}

	g, gctx := errgroup.WithContext(ctx)
	expired := make(chan struct{})
	loopDone := make(chan struct{})

	if deadline := d.sess.Deadline(); !deadline.IsZero() {
		g.Go(func() error {
			t := time.NewTimer(time.Until(deadline))
			defer t.Stop()
			select {
			case <-t.C:
				close(expired)
			case <-loopDone:
			case <-gctx.Done():
			}
			return nil
		})
	}
	g.Go(func() error {
		defer close(loopDone)
		err := d.loop(gctx, lines, expired)
		if errors.Is(err, errTimeUp) || errors.Is(err, io.EOF) {
			return nil
		}
		return err
	})
	return g.Wait()
}

func (d *driller) loop(ctx context.Context, lines <-chan string, expired <-chan struct{}) error {
	for p := d.sess.Current(); p != nil; p = d.sess.Current() {
		pr := d.sess.Progress()
		if d.cfg.Mode == factdrill.TimeBoxed {
			left := time.Until(d.sess.Deadline()).Round(time.Second)
			printf(d.cmd, "[%d, %v left] %d × %d = ", pr.Current, left, p.A, p.B)
		} else {
			printf(d.cmd, "[%d/%d] %d × %d = ", pr.Current, pr.Total, p.A, p.B)
		}

		if err := d.ask(ctx, lines, expired); err != nil {
			return err
		}
		d.sess.Advance(time.Now())
	}
	return nil
}

// ask waits for an answer to the active problem, or reveals it once the
// reveal countdown runs out.
func (d *driller) ask(ctx context.Context, lines <-chan string, expired <-chan struct{}) error {
	var revealC <-chan struct{}
	if d.cfg.RevealAnswer {
		cd := reveal.Start(d.cfg.RevealDelay(), nil)
		defer cd.Cancel()
		revealC = cd.Done()
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-expired:
		cprintf(d.cmd, title, "\nTime is up!\n")
		return errTimeUp
	case <-revealC:
		r := d.sess.Reveal(time.Now())
		cprintf(d.cmd, faint, "\nThe answer is %d.\n", r.CorrectAnswer)
	case line, ok := <-lines:
		if !ok || strings.TrimSpace(line) == "" {
			return io.EOF
		}
		r := d.sess.SubmitAnswer(line, time.Now())
		if r.Correct {
			cprintf(d.cmd, good, "Correct!\n")
		} else if err := d.retry(ctx, lines, expired, r.CorrectAnswer); err != nil {
			return err
		}
	}
	return nil
}

// retry handles a wrong first answer. In single-attempt mode it shows the
// answer; otherwise it asks again until the learner types it. Only the
// first answer counts.
func (d *driller) retry(ctx context.Context, lines <-chan string, expired <-chan struct{}, answer int) error {
	if d.cfg.SingleAttempt {
		cprintf(d.cmd, bad, "Wrong, the answer is %d.\n", answer)
		return nil
	}
	want := strconv.Itoa(answer)
	for {
		cprintf(d.cmd, bad, "Wrong, try again: ")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-expired:
			cprintf(d.cmd, title, "\nTime is up! The answer was %d.\n", answer)
			return errTimeUp
		case line, ok := <-lines:
			if !ok || strings.TrimSpace(line) == "" {
				return io.EOF
			}
			if strings.TrimSpace(line) == want {
				return nil
			}
		}
	}
}

func (d *driller) report() {
	final, ok := d.sess.Final()
	if !ok {
		return
	}
	r := final.Results
	printf(d.cmd, "\n%d/%d correct (%.1f%%), %.1fs total, %.1fs per problem.\n",
		r.CorrectAnswers, r.TotalProblems, r.Accuracy, r.TotalTime, r.AverageTime)

	var day stats.DailyStats
	day.Add(final.Problems)
	weak := stats.Weakest(day.Problems, 3)
	if len(weak) == 0 || weak[0].Accuracy() == 100 {
		return
	}
	cprintf(d.cmd, title, "Practice next:")
	for _, p := range weak {
		if p.Accuracy() == 100 {
			break
		}
		printf(d.cmd, " %d×%d", p.Lo, p.Hi)
	}
	printf(d.cmd, "\n")
}
