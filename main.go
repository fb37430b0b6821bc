package main

import (
	"fmt"
	"os"

	"auction-ledger/internal/catalog"
	"auction-ledger/internal/config"
	"auction-ledger/internal/directory"
	"auction-ledger/internal/ledger"
	"auction-ledger/internal/server"
	"auction-ledger/internal/store"
	"auction-ledger/utils"
)

func main() {
	cfg := config.Load()
	loc := cfg.Location()

	lotStore, err := store.NewLotStore(cfg.DataDir, cfg.LockTimeout, loc)
	if err != nil {
		utils.Fatal("failed to open lot store", map[string]any{"error": err.Error()})
	}
	bidStore, err := store.NewBidStore(cfg.DataDir, cfg.LockTimeout, loc)
	if err != nil {
		utils.Fatal("failed to open bid store", map[string]any{"error": err.Error()})
	}
	employeeStore, err := store.NewEmployeeStore(cfg.DataDir, cfg.LockTimeout)
	if err != nil {
		utils.Fatal("failed to open employee store", map[string]any{"error": err.Error()})
	}

	auctionLedger := ledger.New(lotStore, bidStore)
	lotCatalog := catalog.New(lotStore)
	bidderDirectory := directory.New(employeeStore)

	router := server.SetupRouter(cfg, auctionLedger, lotCatalog, bidderDirectory)

	addr := ":" + cfg.Port
	fmt.Printf("Starting auction server on %s...\n", addr)
	if err := router.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}
