// Package cli 运维命令行：直接以管理员主体调用管理端 service。
package cli

import (
	"context"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"jobboard/internal/bootstrap"
	"jobboard/internal/core/config"
	"jobboard/internal/core/logger"
)

// Loader 按需组装依赖；测试里替换成内存库
type Loader func(ctx context.Context) (*bootstrap.Container, func(), error)

// FromConfig 读配置文件组装依赖
func FromConfig(path *string) Loader {
	return func(ctx context.Context) (*bootstrap.Container, func(), error) {
		cfg, err := config.Load(*path)
		if err != nil {
			return nil, nil, err
		}
		log, closeLog := logger.FromConfig(cfg.Log)
		c, closeDeps, err := bootstrap.New(ctx, cfg, log)
		if err != nil {
			closeLog()
			return nil, nil, err
		}
		return c, func() { closeDeps(); closeLog() }, nil
	}
}

type app struct {
	load Loader
	out  io.Writer
	c    *bootstrap.Container
	done func()
}

func NewRootCmd(load Loader, out io.Writer) *cobra.Command {
	if out == nil {
		out = os.Stdout
	}
	return (&app{load: load, out: out}).root()
}

func (a *app) root() *cobra.Command {
	root := &cobra.Command{
		Use:           "jobboard-admin",
		Short:         "Operator console for the job board",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			c, done, err := a.load(cmd.Context())
			if err != nil {
				return err
			}
			a.c, a.done = c, done
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) { a.close() },
	}
	root.AddCommand(a.migrateCmd(), a.accountsCmd(), a.jobsCmd(), a.applicationsCmd())
	return root
}

// Execute cmd/admin 入口
func Execute() int {
	path := os.Getenv("CONFIG_PATH")
	a := &app{load: FromConfig(&path), out: os.Stdout}
	defer a.close()
	root := a.root()
	root.PersistentFlags().StringVarP(&path, "config", "c", path, "config file (default ./configs/config.local.yaml)")
	if err := root.ExecuteContext(context.Background()); err != nil {
		pterm.Error.Println(err)
		return 1
	}
	return 0
}

// close 幂等；命令出错时 PostRun 不会执行，由 Execute 兜底
func (a *app) close() {
	if a.done != nil {
		a.done()
		a.done = nil
	}
}

func (a *app) success(format string, args ...any) {
	pterm.Success.WithWriter(a.out).Printfln(format, args...)
}

func (a *app) table(data pterm.TableData) error {
	return pterm.DefaultTable.WithHasHeader().WithWriter(a.out).WithData(data).Render()
}
