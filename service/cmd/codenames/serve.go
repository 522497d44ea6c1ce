package main

import (
	"context"
	"flag"

	"github.com/spymaster-lab/codenames/service/internal/server"
)

func (a *app) serve(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	addr := fs.String("addr", a.cfg.Addr, "Listen address.")
	if err := fs.Parse(args); err != nil {
		return err
	}
	list, err := a.wordList()
	if err != nil {
		return err
	}
	st, err := a.openStores(ctx)
	if err != nil {
		return err
	}
	defer st.close()

	if a.cfg.JWTSecret == "" {
		a.log.Warn("JWT_SECRET is not set; POST /games is open to everyone")
	}
	srv := server.New(server.Deps{
		Config:  a.cfg,
		Log:     a.log,
		Words:   list,
		History: st.history,
		Cache:   st.cache,
	})
	return srv.Start(ctx, *addr)
}
