package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	publicMiddleware := standardMiddleware.Append(app.identifyUser)
	authMiddleware := standardMiddleware.Append(app.requireRole("user"))
	staffMiddleware := standardMiddleware.Append(app.requireRole("staff"))

	mux := pat.New()

	// Registration & sign in
	mux.Post("/register", standardMiddleware.ThenFunc(app.userHandler.Register))
	mux.Get("/register/confirm/:token", standardMiddleware.ThenFunc(app.userHandler.ConfirmEmail))
	mux.Post("/register/set_password/:token", standardMiddleware.ThenFunc(app.userHandler.SetPassword))
	mux.Post("/user/sign_in", standardMiddleware.ThenFunc(app.userHandler.SignIn))

	// Catalogs (маршруты с константным префиксом раньше, чем :id)
	mux.Post("/ads/advertisements/categories", staffMiddleware.ThenFunc(app.categoryHandler.CreateCategory))
	mux.Get("/ads/advertisements/categories", publicMiddleware.ThenFunc(app.categoryHandler.GetCategoryTree))
	mux.Get("/ads/advertisements/categories/:id", publicMiddleware.ThenFunc(app.categoryHandler.GetCategoryByID))
	mux.Put("/ads/advertisements/categories/:id", staffMiddleware.ThenFunc(app.categoryHandler.UpdateCategory))
	mux.Del("/ads/advertisements/categories/:id", staffMiddleware.ThenFunc(app.categoryHandler.DeleteCategory))

	mux.Post("/ads/advertisements/regions", staffMiddleware.ThenFunc(app.regionHandler.CreateRegion))
	mux.Get("/ads/advertisements/regions", publicMiddleware.ThenFunc(app.regionHandler.GetRegions))
	mux.Post("/ads/advertisements/cities", staffMiddleware.ThenFunc(app.cityHandler.CreateCity))
	mux.Get("/ads/advertisements/cities", publicMiddleware.ThenFunc(app.cityHandler.GetCities))

	// Advertisements
	mux.Get("/ads/advertisements", publicMiddleware.ThenFunc(app.advertisementHandler.GetAdvertisements))
	mux.Post("/ads/advertisements", authMiddleware.ThenFunc(app.advertisementHandler.CreateAdvertisement))
	mux.Del("/ads/advertisements/:id/unlist", authMiddleware.ThenFunc(app.advertisementHandler.UnlistAdvertisement))
	mux.Get("/ads/advertisements/:id", publicMiddleware.ThenFunc(app.advertisementHandler.GetAdvertisementByID))

	// Cabinet
	mux.Get("/ads/cabinet", authMiddleware.ThenFunc(app.advertisementHandler.GetCabinet))
	mux.Post("/ads/cabinet/:id/submit", authMiddleware.ThenFunc(app.advertisementHandler.SubmitForModeration))
	mux.Get("/ads/cabinet/:id", authMiddleware.ThenFunc(app.advertisementHandler.GetCabinetAd))
	mux.Put("/ads/cabinet/:id", authMiddleware.ThenFunc(app.advertisementHandler.UpdateCabinetAd))
	mux.Del("/ads/cabinet/:id", authMiddleware.ThenFunc(app.advertisementHandler.DeleteCabinetAd))

	// Moderation ledger
	mux.Post("/ads/moderation_history", staffMiddleware.ThenFunc(app.moderationHandler.CreateRecord))
	mux.Get("/ads/moderation_history", staffMiddleware.ThenFunc(app.moderationHandler.GetRecords))
	mux.Get("/ads/moderation_history/:id", staffMiddleware.ThenFunc(app.moderationHandler.GetRecordByID))
	mux.Put("/ads/moderation_history/:id", staffMiddleware.ThenFunc(app.moderationHandler.UpdateRecord))
	mux.Del("/ads/moderation_history/:id", staffMiddleware.ThenFunc(app.moderationHandler.DeleteRecord))

	// Background jobs
	mux.Get("/jobs/:id", staffMiddleware.ThenFunc(app.jobHandler.GetJobByID))

	return mux
}
