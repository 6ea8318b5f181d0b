package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/born-ml/bessel/internal/autodiff"
	"github.com/born-ml/bessel/internal/autodiff/ops"
	"github.com/born-ml/bessel/internal/backend/cpu"
	"github.com/born-ml/bessel/internal/backend/webgpu"
	"github.com/born-ml/bessel/internal/debug"
	"github.com/born-ml/bessel/internal/metrics"
	"github.com/born-ml/bessel/internal/tensor"
)

type cli struct {
	app *kingpin.Application

	debug  *bool
	device *string

	eval      *kingpin.CmdClause
	evalOrder *float64
	evalZ     *[]float64
	evalDType *string

	grad      *kingpin.CmdClause
	gradOrder *float64
	gradZ     *[]float64
	gradDType *string

	stats       *kingpin.CmdClause
	statsWindow *int
	statsQuants *[]float64

	versionCmd *kingpin.CmdClause
}

func newCLI(stdout io.Writer) *cli {
	app := kingpin.New("bessel", "Scaled modified Bessel function of the first kind, with gradients.")
	app.Version(version)
	app.Writer(stdout)
	app.UsageWriter(stdout)

	c := &cli{app: app}
	c.debug = app.Flag("debug", "Report non-finite gradients and other diagnostics on stderr.").Bool()
	c.device = app.Flag("device", "Device holding the z and result tensors.").Default("cpu").Enum("cpu", "webgpu")

	c.eval = app.Command("eval", "Print exp(-|z|) * I_v(z) for each z.")
	c.evalOrder = c.eval.Flag("order", "Bessel order v.").Short('v').Required().Float64()
	c.evalDType = c.eval.Flag("dtype", "Tensor dtype.").Default("float64").Enum("float32", "float64")
	c.evalZ = c.eval.Arg("z", "Arguments.").Required().Float64List()

	c.grad = app.Command("grad", "Print the value and d/dz of exp(-|z|) * I_v(z) for each z.")
	c.gradOrder = c.grad.Flag("order", "Bessel order v.").Short('v').Required().Float64()
	c.gradDType = c.grad.Flag("dtype", "Tensor dtype.").Default("float64").Enum("float32", "float64")
	c.gradZ = c.grad.Arg("z", "Arguments.").Required().Float64List()

	c.stats = app.Command("stats", "Read numbers from stdin and print running statistics.")
	c.statsWindow = c.stats.Flag("window", "Rolling window length.").Short('w').Default(strconv.Itoa(metrics.DefaultRollLen)).Int()
	c.statsQuants = c.stats.Flag("quantile", "Quantile to report (repeatable).").Short('q').Float64List()

	c.versionCmd = app.Command("version", "Show version.")
	return c
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	c := newCLI(stdout)
	cmd, err := c.app.Parse(args)
	if err != nil {
		return err
	}
	if *c.debug {
		debug.Enable()
	}

	switch cmd {
	case c.eval.FullCommand(), c.grad.FullCommand():
		dev, release, err := openDevice(*c.device)
		if err != nil {
			return err
		}
		defer release()

		if cmd == c.eval.FullCommand() {
			return runEval(stdout, dev, *c.evalOrder, *c.evalZ, *c.evalDType)
		}
		return runGrad(stdout, dev, *c.gradOrder, *c.gradZ, *c.gradDType)
	case c.stats.FullCommand():
		return runStats(stdin, stdout, *c.statsWindow, *c.statsQuants)
	case c.versionCmd.FullCommand():
		_, err := fmt.Fprintf(stdout, "bessel %s\n", version)
		return err
	}
	return fmt.Errorf("unknown command %q", cmd)
}

// openDevice registers the transfer for the named device.
func openDevice(name string) (tensor.Device, func(), error) {
	if name != "webgpu" {
		return tensor.CPU, func() {}, nil
	}
	unregister, err := webgpu.Register()
	if err != nil {
		return tensor.CPU, nil, fmt.Errorf("open webgpu: %w", err)
	}
	return tensor.WebGPU, unregister, nil
}

func newInput(dev tensor.Device, zs []float64, dtype string) (*tensor.RawTensor, error) {
	z, err := tensor.FromFloat64s(zs, tensor.Shape{len(zs)}, parseDType(dtype))
	if err != nil {
		return nil, err
	}
	return tensor.ToDevice(z, dev)
}

func parseDType(name string) tensor.DataType {
	if name == "float32" {
		return tensor.Float32
	}
	return tensor.Float64
}

func runEval(w io.Writer, dev tensor.Device, v float64, zs []float64, dtype string) error {
	z, err := newInput(dev, zs, dtype)
	if err != nil {
		return err
	}

	out, _ := ops.Ive.Forward(v, z)
	values, err := tensor.Values(out)
	if err != nil {
		return err
	}
	for i, zi := range zs {
		if _, err := fmt.Fprintf(w, "%g\t%.17g\n", zi, values[i]); err != nil {
			return err
		}
	}
	return nil
}

func runGrad(w io.Writer, dev tensor.Device, v float64, zs []float64, dtype string) error {
	z, err := newInput(dev, zs, dtype)
	if err != nil {
		return err
	}

	backend := autodiff.New(cpu.New())
	backend.Tape().StartRecording()
	out := backend.Ive(v, z)
	grads := autodiff.Backward(out, backend)

	values, err := tensor.Values(out)
	if err != nil {
		return err
	}
	gradZ, err := tensor.Values(grads[z])
	if err != nil {
		return err
	}
	for i, zi := range zs {
		if _, err := fmt.Fprintf(w, "%g\t%.17g\t%.17g\n", zi, values[i], gradZ[i]); err != nil {
			return err
		}
	}
	return nil
}

func runStats(r io.Reader, w io.Writer, window int, quantiles []float64) error {
	for _, q := range quantiles {
		if q < 0 || q > 1 {
			return fmt.Errorf("quantile %g out of range [0, 1]", q)
		}
	}

	s := metrics.New(window)
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		v, err := strconv.ParseFloat(scanner.Text(), 64)
		if err != nil {
			return fmt.Errorf("parse observation: %w", err)
		}
		s.Update(v, 1)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read observations: %w", err)
	}

	fmt.Fprintf(w, "count\t%d\n", s.Count())
	fmt.Fprintf(w, "sum\t%g\n", s.Sum())
	fmt.Fprintf(w, "avg\t%g\n", s.Avg())
	fmt.Fprintf(w, "roll_avg\t%g\n", s.RollAvg())
	for _, q := range quantiles {
		fmt.Fprintf(w, "p%g\t%g\n", q*100, s.Quantile(q))
	}
	return nil
}
