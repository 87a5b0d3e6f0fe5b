package server

import "net/http"

func (s *Server) initRoutes() {
	// USERS
	s.RegisterRouteHandler("POST "+RouteSignup, ChainMiddleware(s.SignupHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteLogin, ChainMiddleware(s.LoginHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteLogout, ChainMiddleware(s.LogoutHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteHandler("POST "+RouteTokenRefresh, ChainMiddleware(s.TokenRefreshHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("PATCH "+RouteAccount, ChainMiddleware(s.UpdateAccountHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteHandler("DELETE "+RouteAccount, ChainMiddleware(s.DeleteAccountHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteHandler("PATCH "+RoutePassword, ChainMiddleware(s.ChangePasswordHandler(), s.APIMiddleware(s.RequireAuth())...))

	// ARTICLES
	s.RegisterRouteHandler("GET "+RouteArticles, ChainMiddleware(s.ListArticlesHandler(), s.APIMiddleware(s.OptionalAuth())...))
	s.RegisterRouteHandler("POST "+RouteArticles, ChainMiddleware(s.CreateArticleHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteHandler("GET "+RouteMyArticles, ChainMiddleware(s.ListMyArticlesHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteHandler("GET "+RouteArticle, ChainMiddleware(s.GetArticleHandler(), s.APIMiddleware(s.OptionalAuth())...))
	s.RegisterRouteHandler("PATCH "+RouteArticle, ChainMiddleware(s.UpdateArticleHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteHandler("DELETE "+RouteArticle, ChainMiddleware(s.DeleteArticleHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteHandler("POST "+RouteArticleLikes, ChainMiddleware(s.LikeHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteHandler("DELETE "+RouteArticleLikes, ChainMiddleware(s.UnlikeHandler(), s.APIMiddleware(s.RequireAuth())...))

	// COMMENTS
	s.RegisterRouteHandler("GET "+RouteMyComments, ChainMiddleware(s.ListMyCommentsHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteHandler("GET "+RouteComments, ChainMiddleware(s.ListCommentsHandler(), s.APIMiddleware(s.OptionalAuth())...))
	s.RegisterRouteHandler("POST "+RouteComments, ChainMiddleware(s.CreateCommentHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteHandler("PATCH "+RouteComment, ChainMiddleware(s.UpdateCommentHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteHandler("DELETE "+RouteComment, ChainMiddleware(s.DeleteCommentHandler(), s.APIMiddleware(s.RequireAuth())...))

	s.RegisterRouteHandler("GET "+RouteImage, ChainMiddleware(s.ImageHandler(), s.APIMiddleware()...))

	// CORS preflight for every path.
	s.RegisterRouteHandler("OPTIONS /", ChainMiddleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}, s.APIMiddleware()...))
}
