package main

import (
	"fmt"

	"github.com/kardianos/service"
	"github.com/spf13/cobra"
)

// program satisfies service.Interface. The installed service runs
// "easel serve", so Start and Stop here only matter when the service
// manager invokes the binary itself.
type program struct{}

func (p *program) Start(_ service.Service) error {
	go func() {
		cmd := serveCmd()
		cmd.SetArgs(nil)
		_ = cmd.Execute()
	}()
	return nil
}

func (p *program) Stop(_ service.Service) error { return nil }

func newService(cfgPath string) (service.Service, error) {
	args := []string{"serve"}
	if cfgPath != "" {
		args = append(args, "--config", cfgPath)
	}
	return service.New(&program{}, &service.Config{
		Name:        "easel",
		DisplayName: "Easel Canvas Server",
		Description: "Canvas tool server for LLM agents",
		Arguments:   args,
	})
}

func serviceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "service",
		Short: "Manage easel as a system service",
	}

	var cfgPath string
	cmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "Path to configuration file")

	actions := []struct {
		use   string
		short string
		run   func(service.Service) error
	}{
		{"install", "Install the system service", service.Service.Install},
		{"uninstall", "Remove the system service", service.Service.Uninstall},
		{"start", "Start the system service", service.Service.Start},
		{"stop", "Stop the system service", service.Service.Stop},
		{"restart", "Restart the system service", service.Service.Restart},
	}

	for _, a := range actions {
		action := a
		cmd.AddCommand(&cobra.Command{
			Use:   action.use,
			Short: action.short,
			RunE: func(_ *cobra.Command, _ []string) error {
				svc, err := newService(cfgPath)
				if err != nil {
					return err
				}
				if err := action.run(svc); err != nil {
					return err
				}
				fmt.Printf("Service %s: OK\n", action.use)
				return nil
			},
		})
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show service status",
		RunE: func(_ *cobra.Command, _ []string) error {
			svc, err := newService(cfgPath)
			if err != nil {
				return err
			}
			status, err := svc.Status()
			if err != nil {
				return err
			}
			switch status {
			case service.StatusRunning:
				fmt.Println("Service status: running")
			case service.StatusStopped:
				fmt.Println("Service status: stopped")
			default:
				fmt.Println("Service status: unknown")
			}
			return nil
		},
	})

	return cmd
}
