package httpserver

func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/metrics", s.metricsEndpoint)

	api := s.echo.Group("/api/v1")
	auth := api.Group("/auth")
	auth.POST("/register", s.register)
	auth.POST("/login", s.login)

	protected := api.Group("")
	protected.Use(s.middleware.JWT.RequireJWT())
	// The limiter keys on the authenticated user, so it sits behind JWT.
	protected.Use(s.middleware.RateLimit.Handler())

	protected.GET("/auth/me", s.me)

	protected.POST("/search/verify", s.verifyClaim)

	protected.POST("/quiz/from-claim", s.quizFromClaim)
	protected.POST("/quiz/grade", s.gradeQuiz)

	protected.GET("/progress", s.getProgress)
	protected.GET("/progress/categories", s.getProgressCategories)

	cards := protected.Group("/fact-cards")
	cards.GET("", s.listFactCards)
	cards.GET("/stats", s.factCardStats)
	cards.DELETE("/:id", s.deleteFactCard)
}
