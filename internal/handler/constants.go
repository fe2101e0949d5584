package handler

// Route pattern constants for chi router registration.
const (
	RouteRoot        = "/"
	RouteCafes       = "/cafes"
	RouteCafesAdd    = "/cafes/add"
	RouteCafeID      = "/cafes/{id}"
	RouteCafeEdit    = "/cafes/{id}/edit"
	RouteCities      = "/cities"
	RouteCityCode    = "/cities/{code}"
	RouteSignup      = "/signup"
	RouteLogin       = "/login"
	RouteLogout      = "/logout"
	RouteProfile     = "/profile"
	RouteProfileEdit = "/profile/edit"
	RouteHealth      = "/health"
	RouteMetrics     = "/metrics"
	RouteStatic      = "/static/*"

	// ParamID and ParamCode are the URL parameter names used in the patterns above.
	ParamID   = "id"
	ParamCode = "code"
)

const redirectCafeID = "/cafes/%d"

// User-visible flash messages.
const (
	msgCafeAdded          = "%s added."
	msgCafeEdited         = "%s edited."
	msgProfileEdited      = "Profile edited."
	msgLoggedOut          = "Successfully logged out."
	msgWelcome            = "Welcome, %s!"
	msgWelcomeBack        = "Welcome back, %s!"
	msgUsernameTaken      = "Username already taken."
	msgInvalidCredentials = "Invalid credentials."
	msgAccountLocked      = "Too many failed attempts. Try again in %s."
)

// Page titles.
const (
	titleHome        = "Home"
	titleAddCafe     = "Add a cafe"
	titleEditCafe    = "Edit %s"
	titleSignup      = "Sign up"
	titleLogin       = "Log in"
	titleProfile     = "Profile"
	titleEditProfile = "Edit profile"
)

// Template names.
const (
	tmplHome        = "home"
	tmplCafeForm    = "cafe/form"
	tmplSignup      = "auth/signup"
	tmplLogin       = "auth/login"
	tmplProfile     = "profile/show"
	tmplProfileEdit = "profile/edit"
)
