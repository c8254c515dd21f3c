//go:build linux || darwin
// +build linux darwin

package main

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/royr0614/CANvas-J1939/canio"
	"github.com/royr0614/CANvas-J1939/codec"
	"github.com/royr0614/CANvas-J1939/config"
	"github.com/royr0614/CANvas-J1939/logging"
)

// Sender periodically encodes and transmits the configured frames, one
// goroutine per frame at its own cycle time.
type Sender struct {
	cfg    *config.Config
	log    *logging.Logger
	table  *codec.MessageTable
	cdc    *codec.Codec
	writer canio.FrameWriter
	frames []*codec.FrameDef
	scen   *Scenario
}

func NewSender(ctx context.Context, cfg *config.Config, table *codec.MessageTable, log *logging.Logger) (*Sender, error) {
	frames, err := selectFrames(cfg, table)
	if err != nil {
		return nil, err
	}

	var scen *Scenario
	if cfg.Send.Source == "scenario" {
		s, err := LoadScenario(cfg.Send.ScenarioPath)
		if err != nil {
			return nil, fmt.Errorf("load scenario: %w", err)
		}
		scen = &s
	}

	writer, err := canio.NewSocketCANWriter(ctx, cfg.Interface)
	if err != nil {
		return nil, err
	}

	return &Sender{
		cfg:    cfg,
		log:    log,
		table:  table,
		cdc:    codec.New(cfg.CodecOptions()),
		writer: writer,
		frames: frames,
		scen:   scen,
	}, nil
}

func selectFrames(cfg *config.Config, table *codec.MessageTable) ([]*codec.FrameDef, error) {
	if len(cfg.Send.Frames) > 0 {
		out := make([]*codec.FrameDef, 0, len(cfg.Send.Frames))
		for _, name := range cfg.Send.Frames {
			fd, ok := table.FrameByName(name)
			if !ok {
				return nil, fmt.Errorf("unknown frame %q (available: %v)", name, table.FrameNames())
			}
			out = append(out, fd)
		}
		return out, nil
	}

	// No explicit list: take frames marked tx, or everything when the
	// table carries no directions (DBC tables do not).
	var tx, all []*codec.FrameDef
	for _, name := range table.FrameNames() {
		fd, _ := table.FrameByName(name)
		all = append(all, fd)
		if fd.Direction == "tx" {
			tx = append(tx, fd)
		}
	}
	if len(tx) > 0 {
		return tx, nil
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("frame table is empty")
	}
	return all, nil
}

func (s *Sender) Close() {
	if s.writer != nil {
		_ = s.writer.Close()
	}
}

func (s *Sender) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, fd := range s.frames {
		fd := fd
		g.Go(func() error { return s.sendLoop(ctx, fd) })
	}
	return g.Wait()
}

func (s *Sender) sendLoop(ctx context.Context, fd *codec.FrameDef) error {
	cycleMS := fd.CycleMS
	if cycleMS <= 0 {
		cycleMS = s.cfg.Send.DefaultCycleMS
	}

	source := newValueSource(s.scen, s.cfg.Send.Seed, fd)

	s.log.Info("Starting TX: frame=%s id=0x%X dlc=%d cycle_ms=%d iface=%s source=%s",
		fd.Name, fd.ID, fd.DLC, cycleMS, s.cfg.Interface, s.cfg.Send.Source)

	start := time.Now()
	ticker := time.NewTicker(time.Duration(cycleMS) * time.Millisecond)
	defer ticker.Stop()

	var sent uint64
	for {
		select {
		case <-ctx.Done():
			s.log.Info("Stopping TX for %s. frames_sent=%d", fd.Name, sent)
			return ctx.Err()

		case now := <-ticker.C:
			t := now.Sub(start).Seconds()
			if s.scen != nil && t > s.scen.DurationS {
				s.log.Info("Scenario complete for %s. frames_sent=%d", fd.Name, sent)
				return nil
			}

			values := source.Values(fd, t)
			payload, err := s.cdc.Encode(fd, values)
			if err != nil {
				s.log.Error("Encode %s failed at t=%.3f: %v", fd.Name, t, err)
				return err
			}

			frame := canio.NewFrame(fd.ID, payload)
			if err := s.writer.WriteFrame(ctx, frame); err != nil {
				s.log.Critical("Transmit %s failed at t=%.3f: %v", fd.Name, t, err)
				return err
			}

			sent++
			s.log.Trace("TX t=%.3f frame=%s id=0x%X len=%d data=% X",
				t, fd.Name, uint32(frame.ID), frame.Length, frame.Data[:frame.Length])
		}
	}
}
