//go:build linux || darwin
// +build linux darwin

package main

import (
	"context"

	"github.com/royr0614/CANvas-J1939/canio"
	"github.com/royr0614/CANvas-J1939/codec"
	"github.com/royr0614/CANvas-J1939/config"
	"github.com/royr0614/CANvas-J1939/logging"
)

// Monitor reads frames off the bus, decodes the ones present in the frame
// table, and logs the physical values.
type Monitor struct {
	cfg    *config.Config
	log    *logging.Logger
	table  *codec.MessageTable
	cdc    *codec.Codec
	reader canio.FrameReader
}

func NewMonitor(ctx context.Context, cfg *config.Config, table *codec.MessageTable, log *logging.Logger) (*Monitor, error) {
	reader, err := canio.NewSocketCANReader(ctx, cfg.Interface)
	if err != nil {
		return nil, err
	}
	return &Monitor{
		cfg:    cfg,
		log:    log,
		table:  table,
		cdc:    codec.New(cfg.CodecOptions()),
		reader: reader,
	}, nil
}

func (m *Monitor) Close() {
	if m.reader != nil {
		_ = m.reader.Close()
	}
}

func (m *Monitor) Run(ctx context.Context) error {
	m.log.Info("Monitoring %s: %d frames in table", m.cfg.Interface, len(m.table.ByID))

	var received uint64
	for {
		frame, err := m.reader.ReadFrame(ctx)
		if err != nil {
			if ctx.Err() != nil {
				m.log.Info("Stopping RX. frames_received=%d", received)
				return ctx.Err()
			}
			m.log.Error("RX error: %v", err)
			continue
		}
		received++

		fd, ok := m.table.FrameByID(frame.ID)
		if !ok {
			m.log.Debug("RX unknown id=0x%X len=%d data=% X", frame.ID, frame.Length, frame.Data[:frame.Length])
			continue
		}

		vals, err := m.cdc.Decode(fd, frame.Data[:frame.Length])
		if err != nil {
			m.log.Error("Decode %s failed: %v", fd.Name, err)
			continue
		}

		m.log.Info("RX frame=%s id=0x%X len=%d %s", fd.Name, frame.ID, frame.Length, formatSignals(fd, vals))
		m.log.Trace("RX raw data=% X", frame.Data[:frame.Length])
	}
}
