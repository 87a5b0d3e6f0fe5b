package server

// Route path constants
// All backend routes are defined here to ensure consistency and prevent typos
const (
	// User Routes
	RouteSignup       = "/users/signup"
	RouteLogin        = "/users/login"
	RouteLogout       = "/users/logout"
	RouteTokenRefresh = "/users/token/refresh"
	RouteAccount      = "/users/account"
	RoutePassword     = "/users/account/password"

	// Article Routes
	RouteArticles     = "/articles"
	RouteArticle      = "/articles/{articleId}"
	RouteArticleLikes = "/articles/{articleId}/likes"
	RouteMyArticles   = "/myArticles"

	// Comment Routes
	RouteComments   = "/articles/{articleId}/comments"
	RouteComment    = "/articles/{articleId}/comments/{commentId}"
	RouteMyComments = "/articles/MyComments"

	// Uploaded images
	RouteImage = "/images/{file}"
)
