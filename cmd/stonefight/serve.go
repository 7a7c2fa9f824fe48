package main

import (
	"context"
	"os"

	"github.com/lox/stonefight/internal/server"
	"golang.org/x/sync/errgroup"
)

// ServeCmd exposes the saved game over WebSocket
type ServeCmd struct {
	Addr string `help:"Listen address (overrides config)"`
}

func (c *ServeCmd) Run(g *Globals) error {
	s, err := g.open(context.Background(), os.Stderr)
	if err != nil {
		return err
	}
	defer s.Close()

	addr := c.Addr
	if addr == "" {
		addr = s.cfg.GetServerAddress()
	}

	ctx, cancel := signalContext(s.logger)
	defer cancel()

	srv := server.NewServer(addr, s.game, s.logger, server.WithSavePath(s.cfg.Game.SaveFile))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return srv.Start(egCtx)
	})
	eg.Go(func() error {
		<-egCtx.Done()
		s.logger.Info("Stopping server", "connections", srv.ConnectionCount())
		return nil
	})
	if err := eg.Wait(); err != nil {
		return err
	}
	return s.save()
}
