package service

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"drop/api"
	"drop/checkout"
	"drop/config"
	"drop/entities"
	"drop/fulfillment"
	dropHttp "drop/http"
	"drop/stock"
	"drop/webhook"
)

func init() {
	logrus.SetLevel(logrus.InfoLevel)
	logrus.SetFormatter(&logrus.JSONFormatter{})
}

type Service struct {
	echoRouter *echo.Echo
	port       string
}

// New wires the engine together. Everything flows from the immutable product
// descriptor and the two remote clients; there is no storage layer to
// connect.
func New(
	cfg config.Config,
	payments *api.PaymentsClient,
	vendor fulfillment.VendorClient,
) Service {
	product := entities.NewProduct(cfg.DropEnd)

	stockCache := stock.NewCache(payments, product)
	gate := stock.NewGate(stockCache, product)

	checkoutService := checkout.NewService(payments, gate, product, cfg.SiteURL)
	dispatcher := fulfillment.NewDispatcher(vendor, product, cfg.SiteURL)
	webhookProcessor := webhook.NewProcessor(cfg.WebhookSecret, product, stockCache, payments, dispatcher)

	echoRouter := dropHttp.NewRouter(stockCache, gate, checkoutService, webhookProcessor, product)

	return Service{
		echoRouter: echoRouter,
		port:       cfg.Port,
	}
}

func (s Service) Run(ctx context.Context) error {
	errgrp, ctx := errgroup.WithContext(ctx)

	errgrp.Go(func() error {
		err := s.echoRouter.Start(":" + s.port)
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	errgrp.Go(func() error {
		<-ctx.Done()
		return s.echoRouter.Shutdown(context.Background())
	})

	return errgrp.Wait()
}
