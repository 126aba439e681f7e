package main

import (
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/milk9111/firstperson/ecs"
	"github.com/milk9111/firstperson/ecs/component"
	"github.com/milk9111/firstperson/ecs/system"
	"github.com/milk9111/firstperson/game"
	"github.com/milk9111/firstperson/logging"
	"github.com/milk9111/firstperson/prefabs"
)

func main() {
	scenarioName := flag.String("scenario", "scenarios/tour.yaml", "scenario prefab to replay")
	frames := flag.Int("frames", 0, "override the scenario frame count")
	every := flag.Int("every", 30, "log player state every N frames (0 = events only)")
	dev := flag.Bool("dev", true, "console logging instead of JSON")
	flag.Parse()

	logger, err := logging.New(logging.FromEnv(*dev))
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	sc, err := prefabs.LoadScenarioSpec(*scenarioName)
	if err != nil {
		logger.Fatal("load scenario", zap.Error(err))
	}
	if *frames > 0 {
		sc.Frames = *frames
	}

	input, err := system.NewScriptedInputSystem(sc.Steps)
	if err != nil {
		logger.Fatal("scenario input", zap.Error(err))
	}
	session, err := game.NewSession(game.Options{
		Level:     sc.Level,
		Character: sc.Character,
		Input:     input,
		Logger:    logger,
	})
	if err != nil {
		logger.Fatal("start session", zap.Error(err))
	}

	logger.Info("scenario start",
		zap.String("scenario", sc.Name),
		zap.Int("frames", sc.Frames),
		zap.Float64("dt", sc.DeltaTime))

	counts := make(map[ecs.EventKind]int)
	for i := 1; i <= sc.Frames; i++ {
		session.Update(sc.DeltaTime)

		for _, evt := range session.World.Events().Items() {
			counts[evt.Kind]++
			fields := []zap.Field{zap.Int("frame", i), zap.String("event", string(evt.Kind))}
			if evt.Target != 0 {
				fields = append(fields, zap.Stringer("target", evt.Target))
			}
			logger.Info("event", fields...)
		}
		if *every > 0 && i%*every == 0 {
			logState(logger, session, i)
		}
	}

	summary := make([]zap.Field, 0, len(counts)+1)
	summary = append(summary, zap.Bool("input_done", input.Done()))
	for kind, n := range counts {
		summary = append(summary, zap.Int(string(kind), n))
	}
	logger.Info("scenario done", summary...)
}

func logState(logger *zap.Logger, s *game.Session, frame int) {
	tr, _ := ecs.Get(s.World, s.Player, component.TransformComponent)
	mv, _ := ecs.Get(s.World, s.Player, component.MovementComponent)
	ch := s.Character()
	if tr == nil || mv == nil || ch == nil {
		return
	}
	jet := ch.Jetpack().State()
	logger.Info("state",
		zap.Int("frame", frame),
		zap.Float64s("position", tr.Position[:]),
		zap.Float64s("velocity", mv.Velocity[:]),
		zap.Stringer("mode", mv.Mode),
		zap.Bool("dashing", ch.Dash().Active()),
		zap.Bool("jetpack", jet.Active),
		zap.Float64("fuel", jet.Fuel),
		zap.Bool("holding", ch.Grab().Holding()))
}
