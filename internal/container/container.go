// Package container wires core rekabot services using go.uber.org/dig.
package container

import (
	"time"

	"go.uber.org/dig"

	"github.com/rekabot/rekabot/internal/agent"
	"github.com/rekabot/rekabot/internal/config"
	"github.com/rekabot/rekabot/internal/providers"
	"github.com/rekabot/rekabot/internal/schema"
	"github.com/rekabot/rekabot/internal/server"
	"github.com/rekabot/rekabot/internal/session"
	"github.com/rekabot/rekabot/internal/shared/llmutils"
	"github.com/rekabot/rekabot/internal/tools"
)

// Container holds the resolved core service singletons.
// Callers use the typed getter methods; they never need to import dig directly.
type Container struct {
	provider schema.LLMProvider
	registry *tools.Registry
	agent    *agent.Agent
	sessions *session.Manager
	httpSrv  *server.Server
}

func (c *Container) Provider() schema.LLMProvider { return c.provider }
func (c *Container) Registry() *tools.Registry    { return c.registry }
func (c *Container) Agent() *agent.Agent          { return c.agent }
func (c *Container) Sessions() *session.Manager   { return c.sessions }
func (c *Container) Server() *server.Server       { return c.httpSrv }

// New builds and wires all core services from cfg.
func New(cfg *config.Config) (*Container, error) {
	d := dig.New()

	if err := d.Provide(func() *config.Config { return cfg }); err != nil {
		return nil, err
	}
	if err := d.Provide(newProvider); err != nil {
		return nil, err
	}
	if err := d.Provide(newRegistry); err != nil {
		return nil, err
	}
	if err := d.Provide(newDispatcher); err != nil {
		return nil, err
	}
	if err := d.Provide(newAgent); err != nil {
		return nil, err
	}
	if err := d.Provide(newSessionManager); err != nil {
		return nil, err
	}
	if err := d.Provide(newServer); err != nil {
		return nil, err
	}

	var result *Container
	err := d.Invoke(func(
		provider schema.LLMProvider,
		registry *tools.Registry,
		a *agent.Agent,
		sessions *session.Manager,
		httpSrv *server.Server,
	) {
		result = &Container{
			provider: provider,
			registry: registry,
			agent:    a,
			sessions: sessions,
			httpSrv:  httpSrv,
		}
	})
	return result, err
}

func newProvider(cfg *config.Config) schema.LLMProvider {
	return providers.NewGeminiProvider(cfg.EffectiveAPIKey(), cfg.Provider.APIBase, cfg.Provider.Model)
}

func newRegistry(cfg *config.Config) (*tools.Registry, error) {
	return tools.NewRegistryBuilder().
		WithTool(tools.NewCalculatorTool()).
		WithTool(tools.NewCurrentTimeTool()).
		WithTool(tools.NewTodoListTool()).
		WithTool(tools.NewDefinitionTool()).
		WithTool(tools.NewCurrencyTool()).
		WithTool(tools.NewUnitTool()).
		WithTool(tools.NewWeatherTool()).
		WithTool(tools.NewColorsTool()).
		WithTool(tools.NewPasswordTool()).
		WithTool(tools.NewEmailValidatorTool()).
		WithTool(tools.NewWebSearchTool(cfg.EffectiveSearchKey(), cfg.Tools.Web.Search.MaxResults)).
		WithTool(tools.NewScrapeTool(cfg.Tools.Web.Fetch.MaxChars)).
		Build()
}

func newDispatcher(cfg *config.Config, registry *tools.Registry) *tools.Dispatcher {
	return tools.NewDispatcher(registry, time.Duration(cfg.Tools.TimeoutSeconds)*time.Second)
}

func newAgent(cfg *config.Config, provider schema.LLMProvider, registry *tools.Registry, dispatcher *tools.Dispatcher) *agent.Agent {
	model := llmutils.StringOrDefault(cfg.Provider.Model, provider.DefaultModel())
	opts := schema.NewChatOptions(model, cfg.Provider.MaxTokens, cfg.Provider.Temperature)
	retrieval := agent.RetrievalOptions{
		ChunkSize: cfg.Retrieval.ChunkSize,
		Overlap:   cfg.Retrieval.Overlap,
		TopK:      cfg.Retrieval.TopK,
	}
	return agent.New(provider, registry, dispatcher, opts, retrieval)
}

func newSessionManager() (*session.Manager, error) {
	return session.NewManager(config.DataDir())
}

func newServer(cfg *config.Config, a *agent.Agent, registry *tools.Registry) *server.Server {
	return server.New(a, registry, cfg.Server.Port)
}
