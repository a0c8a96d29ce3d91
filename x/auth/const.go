package auth

// public paths are served without the api key
var publicPaths = []string{
	"/",
	"/health",
	"/metrics",
	"/socket",
}
