package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/urfave/cli"
	"go.uber.org/zap"

	"github.com/Faultbox/castview/internal/assets"
	"github.com/Faultbox/castview/internal/config"
	"github.com/Faultbox/castview/internal/export"
	"github.com/Faultbox/castview/internal/logger"
	"github.com/Faultbox/castview/internal/model"
	"github.com/Faultbox/castview/internal/sample"
	"github.com/Faultbox/castview/pkg/cast"
)

var errUsage = errors.New("missing arguments")

// cfg is the effective configuration, loaded before any command runs.
var cfg *config.Config

// setup loads configuration and initializes the logger.
func setup(ctx *cli.Context) error {
	var err error
	cfg, err = config.Load(config.Overrides{
		ConfigPath: ctx.GlobalString("config"),
		Debug:      ctx.GlobalBool("debug"),
		Folder:     ctx.GlobalString("folder"),
		UpAxis:     ctx.GlobalString("up-axis"),
		NoTextures: ctx.GlobalBool("no-textures"),
		LogFile:    ctx.GlobalString("log-file"),
	})
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	logger.Sugar.Debugf("config: %+v", cfg)

	// Reject a bad up axis before any file is touched.
	if _, err := model.NewAxisTransform(cfg.Import.UpAxis); err != nil {
		return err
	}
	return nil
}

// importOptions maps the import section of the config onto build options.
func importOptions(c *config.Config) model.Options {
	return model.Options{
		Folder:         c.Import.Folder,
		UpAxis:         c.Import.UpAxis,
		LoadTextures:   c.Import.LoadTextures,
		ReverseWinding: c.Import.ReverseWinding,
		Seed:           c.Import.Seed,
	}
}

func requireArgs(ctx *cli.Context, n int) error {
	if ctx.NArg() < n {
		return fmt.Errorf("%w: usage: castview %s %s", errUsage, ctx.Command.Name, ctx.Command.ArgsUsage)
	}
	return nil
}

func cmdInfo(ctx *cli.Context) error {
	if err := requireArgs(ctx, 1); err != nil {
		return err
	}
	for _, path := range ctx.Args() {
		m, err := model.LoadFile(path, importOptions(cfg))
		if err != nil {
			return err
		}
		fmt.Print(export.Summary(m))
		if ctx.Bool("meshes") {
			fmt.Print(export.MeshTable(m))
		}
	}
	return nil
}

func cmdTree(ctx *cli.Context) error {
	if err := requireArgs(ctx, 1); err != nil {
		return err
	}
	file, err := cast.ParseFile(ctx.Args().First())
	if err != nil {
		return err
	}
	fmt.Printf("cast version %d, %d root node(s)\n", file.Version, len(file.Roots))
	for _, root := range file.Roots {
		printTree(os.Stdout, root, 0)
	}
	return nil
}

// printTree writes one line per node with its hash and property summary.
func printTree(w io.Writer, n *cast.Node, depth int) {
	tags := make([]string, 0, len(n.Properties))
	for tag, values := range n.Properties {
		kind := "?"
		if len(values) > 0 {
			kind = values[0].Kind().Code()
		}
		tags = append(tags, fmt.Sprintf("%s:%s[%d]", tag, kind, len(values)))
	}
	sort.Strings(tags)
	fmt.Fprintf(w, "%s%s 0x%016X %s\n", strings.Repeat("  ", depth), n.Type, n.Hash, strings.Join(tags, " "))
	for _, child := range n.Children {
		printTree(w, child, depth+1)
	}
}

func cmdList(ctx *cli.Context) error {
	if err := requireArgs(ctx, 1); err != nil {
		return err
	}
	mgr := assets.NewManager()
	if _, err := mgr.LoadPaths(ctx.Args()); err != nil {
		return err
	}
	mgr.Search(ctx.String("search"))

	for _, a := range mgr.Visible() {
		fmt.Printf("%-32s %-6s %s\n", a.Name, a.TypeName(), a.Path)
	}
	fmt.Printf("%d of %d asset(s)\n", mgr.Len(), mgr.Total())
	return nil
}

func cmdExport(ctx *cli.Context) error {
	if err := requireArgs(ctx, 1); err != nil {
		return err
	}
	in := ctx.Args().First()
	m, err := model.LoadFile(in, importOptions(cfg))
	if err != nil {
		return err
	}

	binary := ctx.Bool("binary") || cfg.Export.Binary
	out := ctx.String("out")
	if out == "" {
		ext := ".gltf"
		if binary {
			ext = ".glb"
		}
		base := filepath.Base(in)
		out = filepath.Join(cfg.Export.OutputDir, strings.TrimSuffix(base, filepath.Ext(base))+ext)
	} else if strings.EqualFold(filepath.Ext(out), ".glb") {
		binary = true
	}

	if err := export.WriteGLTF(m, out, binary); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", out)
	return nil
}

func cmdSwatches(ctx *cli.Context) error {
	if err := requireArgs(ctx, 1); err != nil {
		return err
	}
	m, err := model.LoadFile(ctx.Args().First(), importOptions(cfg))
	if err != nil {
		return err
	}

	dir := ctx.String("out")
	if dir == "" {
		dir = cfg.Export.OutputDir
	}
	size := ctx.Int("size")
	if size == 0 {
		size = cfg.Export.SwatchSize
	}

	paths, err := export.WriteSwatches(m, dir, size)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Println(p)
	}
	return nil
}

func cmdSample(ctx *cli.Context) error {
	if err := requireArgs(ctx, 1); err != nil {
		return err
	}
	out := ctx.Args().First()
	if err := sample.Write(out, ctx.String("texture")); err != nil {
		return err
	}
	logger.Info("wrote sample cast file", zap.String("path", out))
	fmt.Printf("wrote %s\n", out)
	return nil
}

func cmdInitConfig(ctx *cli.Context) error {
	if out := ctx.String("out"); out != "" {
		if err := cfg.SaveTo(out); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", out)
		return nil
	}
	path, err := cfg.Save()
	if err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
