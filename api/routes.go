package api

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/entry"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/statistics"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/status"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/subject"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/transfer"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/wallet"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
)

type Rest struct {
	Logger  *logrus.Logger
	Port    string
	Service *service.Service
}

func (r *Rest) Serve() {
	mux := http.NewServeMux()

	statusHandler := status.NewHandler()
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	humaAPI := humago.New(mux, huma.DefaultConfig("Ledger Server", "1.0.0"))

	entry.NewCreateEntryHandler(r.Service.Entries, r.Service.Wallets).Register(humaAPI)
	entry.NewGetEntryHandler(r.Service.Entries).Register(humaAPI)
	entry.NewUpdateEntryHandler(r.Service.Entries).Register(humaAPI)
	entry.NewDeleteEntryHandler(r.Service.Entries).Register(humaAPI)
	entry.NewListEntriesHandler(r.Service.Entries).Register(humaAPI)
	statistics.NewHandler(r.Service.Statistics).Register(humaAPI)
	transfer.NewHandler(r.Service.Transfers, r.Service.Wallets).Register(humaAPI)
	wallet.NewHandler(r.Service.Wallets).Register(humaAPI)
	subject.NewHandler(r.Service.Subjects).Register(humaAPI)

	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           logging.RequestLogger(r.Logger, mux),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	r.Logger.Info("HttpServer.Serve.listening")
	err := server.ListenAndServe()
	if err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
	}
	r.Logger.Info("HttpServer.Serve.shutting down")
}
