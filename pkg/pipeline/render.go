package pipeline

import (
	"context"
	"time"

	"github.com/vipuljat/ProjectBasedLearning/pkg/diagram"
	"github.com/vipuljat/ProjectBasedLearning/pkg/diagram/dot"
	"github.com/vipuljat/ProjectBasedLearning/pkg/diagram/mermaid"
	apperrors "github.com/vipuljat/ProjectBasedLearning/pkg/errors"
	"github.com/vipuljat/ProjectBasedLearning/pkg/observability"
)

// produce renders req without consulting any cache.
func produce(ctx context.Context, req Request) ([]byte, []diagram.Diagnostic, error) {
	kind := string(req.Kind)

	if req.Format == FormatMermaid {
		start := time.Now()
		observability.Pipeline().OnGenerateStart(ctx, kind)
		res := mermaid.Generate(req.Kind, req.Payload, mermaid.Options{ChainSequential: req.Options.ChainSequential})
		observability.Pipeline().OnGenerateComplete(ctx, kind, len(res.Diagnostics), time.Since(start), nil)
		return []byte(res.Code), res.Diagnostics, nil
	}

	start := time.Now()
	observability.Pipeline().OnGenerateStart(ctx, kind)
	src, diags, err := dot.ToDOT(req.Kind, req.Payload)
	observability.Pipeline().OnGenerateComplete(ctx, kind, len(diags), time.Since(start), err)
	if err != nil {
		return nil, nil, err
	}
	if req.Format == FormatDOT {
		return []byte(src), diags, nil
	}

	start = time.Now()
	observability.Pipeline().OnRenderStart(ctx, kind, req.Format)
	var data []byte
	switch req.Format {
	case FormatSVG:
		data, err = dot.RenderSVG(ctx, src)
	case FormatPNG:
		data, err = dot.RenderPNG(ctx, src, req.Options.Scale)
	case FormatPDF:
		data, err = dot.RenderPDF(ctx, src)
	}
	observability.Pipeline().OnRenderComplete(ctx, kind, req.Format, len(data), time.Since(start), err)
	if err != nil {
		if apperrors.GetCode(err) == "" {
			err = apperrors.Wrap(apperrors.ErrCodeRender, err, "render %s as %s", kind, req.Format)
		}
		return nil, nil, err
	}
	return data, diags, nil
}
