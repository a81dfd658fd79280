package providers

import (
	"net/http"

	"nest/internal/structures"
)

type RouterProviderInterface interface {
	Get(url string, handler http.Handler)
	Post(url string, handler http.Handler)
	GetRoutes() []structures.Route
}

type RouterProvider struct {
	routes []structures.Route
}

func (rp *RouterProvider) Get(url string, handler http.Handler) {
	rp.routes = append(rp.routes, structures.Route{
		Method:  http.MethodGet,
		Url:     url,
		Handler: handler,
	})
}

func (rp *RouterProvider) Post(url string, handler http.Handler) {
	rp.routes = append(rp.routes, structures.Route{
		Method:  http.MethodPost,
		Url:     url,
		Handler: handler,
	})
}

func (rp *RouterProvider) GetRoutes() []structures.Route {
	return rp.routes
}

func NewRouterProvider() RouterProviderInterface {
	return &RouterProvider{}
}

// NewServeMux registers every route under its method pattern. ServeMux
// answers 405 itself when a path matches but the method does not.
func NewServeMux(router RouterProviderInterface) *http.ServeMux {
	mux := http.NewServeMux()
	for _, route := range router.GetRoutes() {
		mux.Handle(route.Pattern(), route.Handler)
	}
	return mux
}
