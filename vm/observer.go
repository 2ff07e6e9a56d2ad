package vm

import (
	"github.com/rs/zerolog"

	"github.com/orion-lang/orion/op"
)

// StepMode controls when OnStep callbacks are triggered.
type StepMode uint8

const (
	// StepAll calls OnStep for every instruction.
	StepAll StepMode = iota

	// StepNone never calls OnStep.
	// Use for: observers that only need Call/Return events.
	StepNone

	// StepSampled calls OnStep every N instructions.
	StepSampled
)

// ObserverConfig specifies what events an observer wants to receive.
// Use NewObserverConfig() to create configs with safe defaults.
type ObserverConfig struct {
	// StepMode controls OnStep callback frequency.
	StepMode StepMode

	// SampleInterval is the number of instructions between OnStep calls
	// when StepMode is StepSampled. Values <= 0 are treated as 1.
	SampleInterval int

	// ObserveCalls enables OnCall callbacks.
	ObserveCalls bool

	// ObserveReturns enables OnReturn callbacks.
	ObserveReturns bool
}

// NewObserverConfig creates a config with ObserveCalls and ObserveReturns
// enabled.
func NewObserverConfig(mode StepMode) ObserverConfig {
	return ObserverConfig{
		StepMode:       mode,
		SampleInterval: 1000,
		ObserveCalls:   true,
		ObserveReturns: true,
	}
}

// NormalizeConfig clamps config values.
func NormalizeConfig(cfg ObserverConfig) ObserverConfig {
	if cfg.StepMode == StepSampled && cfg.SampleInterval <= 0 {
		cfg.SampleInterval = 1
	}
	return cfg
}

// Observer receives VM execution events. It can be used for tracing,
// profiling or debugging without modifying the evaluator.
//
// Implementations can embed NoOpObserver to get default implementations
// for the methods they don't need. Methods are called synchronously during
// evaluation. Returning false from any of them halts evaluation.
type Observer interface {
	// Config returns the observer's configuration.
	// Called once when evaluation starts.
	Config() ObserverConfig

	// OnStep is called based on the StepMode in the observer's config.
	OnStep(event StepEvent) bool

	// OnCall is called when a lambda is invoked.
	OnCall(event CallEvent) bool

	// OnReturn is called when a lambda returns.
	OnReturn(event ReturnEvent) bool
}

// StepEvent describes a single instruction step.
type StepEvent struct {
	// IP is the index of the opcode in the stream being executed.
	IP int

	Opcode     op.Code
	OpcodeName string

	// StackDepth is the current depth of the operand stack.
	StackDepth int

	// CallDepth is the number of lambda calls in progress.
	CallDepth int
}

// CallEvent describes a lambda call.
type CallEvent struct {
	// Chunk is the id of the chunk being invoked.
	Chunk    uint16
	ArgCount int

	// CallDepth is the call depth after the call.
	CallDepth int
}

// ReturnEvent describes a lambda return.
type ReturnEvent struct {
	Chunk uint16

	// CallDepth is the call depth after returning.
	CallDepth int
}

// NoOpObserver is an Observer that does nothing. It reports StepAll with
// calls and returns enabled; override Config() to receive fewer events.
type NoOpObserver struct{}

func (NoOpObserver) Config() ObserverConfig {
	return NewObserverConfig(StepAll)
}

func (NoOpObserver) OnStep(StepEvent) bool { return true }

func (NoOpObserver) OnCall(CallEvent) bool { return true }

func (NoOpObserver) OnReturn(ReturnEvent) bool { return true }

// LogObserver writes every execution event to a zerolog logger at trace
// level.
type LogObserver struct {
	NoOpObserver
	logger zerolog.Logger
}

// NewLogObserver creates an observer that traces to logger.
func NewLogObserver(logger zerolog.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

func (o *LogObserver) OnStep(event StepEvent) bool {
	o.logger.Trace().
		Int("ip", event.IP).
		Str("op", event.OpcodeName).
		Int("stack", event.StackDepth).
		Int("depth", event.CallDepth).
		Msg("step")
	return true
}

func (o *LogObserver) OnCall(event CallEvent) bool {
	o.logger.Trace().
		Uint16("chunk", event.Chunk).
		Int("args", event.ArgCount).
		Int("depth", event.CallDepth).
		Msg("call")
	return true
}

func (o *LogObserver) OnReturn(event ReturnEvent) bool {
	o.logger.Trace().
		Uint16("chunk", event.Chunk).
		Int("depth", event.CallDepth).
		Msg("return")
	return true
}
