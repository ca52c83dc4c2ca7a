package auth

// Provider supplies the login and token sent with every request. Implementations
// are consulted once per request, so rotated credentials take effect on the next
// call without rebuilding the client.
type Provider interface {
	Login() string
	Token() string
}

// Credentials is a resolved login/token pair.
type Credentials struct {
	Login string
	Token string
}

// Static returns a Provider that always yields the given pair.
func Static(login, token string) Provider {
	return staticProvider{login: login, token: token}
}

type staticProvider struct {
	login string
	token string
}

func (s staticProvider) Login() string { return s.login }
func (s staticProvider) Token() string { return s.token }

// Func adapts a function returning a fresh pair into a Provider.
type Func func() Credentials

// Login implements Provider.
func (f Func) Login() string { return f().Login }

// Token implements Provider.
func (f Func) Token() string { return f().Token }

// Fetch pulls the current pair from p. A nil provider yields empty credentials.
func Fetch(p Provider) Credentials {
	if p == nil {
		return Credentials{}
	}
	return Credentials{Login: p.Login(), Token: p.Token()}
}

// Setter is the part of a parameter mapping the injector writes into.
type Setter interface {
	Set(key, value string)
}

// Query renders the literal query suffix used by insecure reads. Values are
// concatenated as-is, without percent-encoding.
func (c Credentials) Query() string {
	return "?" + c.Body()
}

// Body renders the literal form body used by secure reads.
func (c Credentials) Body() string {
	return "login=" + c.Login + "&token=" + c.Token
}

// MergeInto writes login and token into params. Existing keys with the same
// names are overwritten.
func (c Credentials) MergeInto(params Setter) {
	params.Set("login", c.Login)
	params.Set("token", c.Token)
}
