package internal

import (
	"net/http"

	"dwd/internal/controllers"
	"dwd/internal/providers"
	"dwd/internal/structures"
)

func InitRoutes(apiController *controllers.ApiController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/list", http.HandlerFunc(apiController.List))
	routers.Get("/vehicles", http.HandlerFunc(apiController.Vehicles))
	routers.Get("/status", http.HandlerFunc(apiController.Status))
	routers.Get("/diagnostics", http.HandlerFunc(apiController.Diagnostics))
	routers.Post("/subscribe", http.HandlerFunc(apiController.Subscribe))
	routers.Post("/unsubscribe", http.HandlerFunc(apiController.Unsubscribe))
	routers.Post("/hold", http.HandlerFunc(apiController.Hold))
	routers.Post("/reset", http.HandlerFunc(apiController.Reset))
	routers.Post("/test-send", http.HandlerFunc(apiController.TestSend))
	return routers
}
