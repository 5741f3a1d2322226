package azure

import (
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/openai/openai-go/option"
)

const (
	pipelineModule  = "chatform"
	pipelineVersion = "v0.1.0"
)

// nextTransport ends the azcore pipeline by handing the request back to
// the openai-go middleware chain.
type nextTransport option.MiddlewareNext

func (n nextTransport) Do(req *http.Request) (*http.Response, error) {
	return n(req)
}

// bearerAuth authenticates requests through one shared azcore bearer token
// policy, which caches the token for scope and refreshes it before expiry.
// Credentials are never sent over plain http. The pipeline does not retry.
func bearerAuth(cred azcore.TokenCredential, scope string) option.RequestOption {
	bearer := runtime.NewBearerTokenPolicy(cred, []string{scope}, nil)

	return option.WithMiddleware(func(req *http.Request, next option.MiddlewareNext) (*http.Response, error) {
		pl := runtime.NewPipeline(pipelineModule, pipelineVersion, runtime.PipelineOptions{}, &policy.ClientOptions{
			Retry:            policy.RetryOptions{MaxRetries: -1},
			PerRetryPolicies: []policy.Policy{bearer},
			Transport:        nextTransport(next),
		})
		azReq, err := runtime.NewRequestFromRequest(req)
		if err != nil {
			return nil, err
		}
		return pl.Do(azReq)
	})
}
