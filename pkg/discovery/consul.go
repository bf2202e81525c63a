package discovery

import (
	"fmt"
	"log"
	"strconv"

	"career-service/internal/config"

	"github.com/hashicorp/consul/api"
)

type ServiceRegistry struct {
	client *api.Client
	config *config.Config
}

var ServiceDiscovery *ServiceRegistry

func init() {
	var err error
	ServiceDiscovery, err = NewServiceRegistry(config.ServiceConfig)
	if err != nil {
		log.Fatalf("Service Discovery Init Failed: %s", err)
	}
	ServiceDiscovery.Register()
}

func NewServiceRegistry(config *config.Config) (*ServiceRegistry, error) {
	consulConfig := api.DefaultConfig()
	consulConfig.Address = config.Consul.ConsulAddress

	client, err := api.NewClient(consulConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Consul client: %v", err)
	}

	return &ServiceRegistry{
		client: client,
		config: config,
	}, nil
}

func (sr *ServiceRegistry) Register() error {
	httpPort, _ := strconv.Atoi(sr.config.Server.Port)

	httpRegistration := &api.AgentServiceRegistration{
		ID:      sr.config.Server.ServiceID + "-http",
		Name:    sr.config.Server.ServiceName,
		Port:    httpPort,
		Address: sr.config.Server.ServiceAddress,
		Check: &api.AgentServiceCheck{
			HTTP:     fmt.Sprintf("http://%s:%s/health", sr.config.Server.ServiceAddress, sr.config.Server.Port),
			Interval: "10s",
			Timeout:  "5s",
		},
		Tags: []string{"career", "matching", "http"},
		Meta: map[string]string{
			"protocol": "http",
		},
	}

	if err := sr.client.Agent().ServiceRegister(httpRegistration); err != nil {
		return fmt.Errorf("failed to register HTTP service with Consul: %v", err)
	}

	log.Println("Successfully registered HTTP service with Consul")
	return nil
}

func (sr *ServiceRegistry) Deregister() error {
	if err := sr.client.Agent().ServiceDeregister(sr.config.Server.ServiceID + "-http"); err != nil {
		log.Printf("Error deregistering HTTP service: %v", err)
	}

	return nil
}

// FindService looks up a service by name in Consul
func (sr *ServiceRegistry) FindService(serviceName string) ([]*api.ServiceEntry, error) {
	services, meta, err := sr.client.Health().Service(serviceName, "", true, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to find service %s: %v", serviceName, err)
	}

	log.Printf("Found %d instances of service %s (ConsulIndex: %d)", len(services), serviceName, meta.LastIndex)

	if len(services) == 0 {
		return nil, fmt.Errorf("no healthy instances of service %s found", serviceName)
	}

	return services, nil
}
