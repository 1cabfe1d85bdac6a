package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/mindweave/mindweave/pkg/mindmap"
)

// HTMLOptions configures interactive HTML generation.
type HTMLOptions struct {
	Root  *mindmap.Node
	Title string
	Path  string // output path; if empty, auto-generated from the title
	Theme Theme
}

// GenerateHTMLFilename creates an auto-generated filename.
// Format: {title}_{YYYYMMDD}_{HHMMSS}.html
func GenerateHTMLFilename(title string) string {
	safe := strings.ReplaceAll(title, " ", "_")
	safe = strings.ReplaceAll(safe, "/", "_")
	if safe == "" {
		safe = "mindmap"
	}
	return fmt.Sprintf("%s_%s.html", safe, time.Now().Format("20060102_150405"))
}

// GenerateHTML writes a self-contained HTML page with the full tree
// embedded as JSON and an inline pan/zoom/collapse viewer that mirrors
// the terminal UI's interaction model. Returns the output path.
func GenerateHTML(opts HTMLOptions) (string, error) {
	if opts.Root == nil {
		return "", fmt.Errorf("no tree to export")
	}
	if opts.Theme.Background == "" {
		opts.Theme = DarkTheme
	}

	treeJSON, err := json.Marshal(opts.Root)
	if err != nil {
		return "", fmt.Errorf("marshal tree: %w", err)
	}

	title := opts.Title
	if title == "" {
		title = opts.Root.Label
	}
	if title == "" {
		title = "Mind Map"
	}

	outputPath := opts.Path
	if outputPath == "" {
		outputPath = GenerateHTMLFilename(title)
	}
	if !strings.HasSuffix(strings.ToLower(outputPath), ".html") {
		outputPath = strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + ".html"
	}

	html := generateViewerHTML(title, string(treeJSON), opts.Theme)

	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create dir: %w", err)
		}
	}
	if err := os.WriteFile(outputPath, []byte(html), 0o644); err != nil {
		return "", err
	}
	return outputPath, nil
}

func generateViewerHTML(title, treeJSON string, theme Theme) string {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%[1]s | mw</title>
    <style>
        :root {
            --bg: %[3]s;
            --node-fill: %[4]s;
            --node-stroke: %[5]s;
            --fg: %[6]s;
            --connector: %[7]s;
        }
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body { background: var(--bg); color: var(--fg); font-family: monospace; overflow: hidden; }
        #stage { width: 100vw; height: 100vh; touch-action: none; cursor: grab; }
        #stage.dragging { cursor: grabbing; }
        #hud {
            position: fixed; top: 0.75rem; left: 0.75rem;
            background: color-mix(in srgb, var(--bg) 85%%, transparent);
            border: 1px solid var(--connector); border-radius: 6px;
            padding: 0.5rem 0.75rem; font-size: 0.7rem; line-height: 1.6;
        }
        #hud button {
            background: var(--node-fill); color: var(--fg);
            border: 1px solid var(--node-stroke); border-radius: 4px;
            font: inherit; padding: 0.1rem 0.5rem; cursor: pointer;
        }
    </style>
</head>
<body>
<div id="hud">
    <strong>%[1]s</strong> · exported %[2]s<br>
    drag to pan · wheel or pinch to zoom · click a node to fold<br>
    <button id="reset">reset view</button>
</div>
<svg id="stage"></svg>
<script>
const TREE = %[8]s;

const NODE_W = 160, NODE_H = 50, H_GAP = 200, V_GAP = 30;
const MIN_SCALE = 0.1, MAX_SCALE = 5.0;
const WHEEL_RATE = 0.001;

// Stable path identifiers: a node keeps its id as long as its
// position among siblings does.
function identify(node, id) {
    return {
        id, label: node.label || '',
        children: (node.children || []).map((c, i) => identify(c, id + '-' + i)),
    };
}
const ROOT = identify(TREE, 'root');

let collapsed = new Set();
let tf = { panX: 50, panY: 150, scale: 0.8 };

// Same two-pass layout as the terminal viewer: a shared vertical
// cursor places leaves and collapsed nodes, parents center on their
// children, and collapsed subtrees are skipped entirely.
function layoutTree() {
    const out = [];
    const cursor = { y: 0 };
    function position(node, depth) {
        const x = depth * H_GAP;
        const isCollapsed = collapsed.has(node.id);
        const p = { node, x, y: 0, isCollapsed, placed: [] };
        if (node.children.length === 0 || isCollapsed) {
            p.y = cursor.y;
            cursor.y += NODE_H + V_GAP;
            return p;
        }
        for (const child of node.children) p.placed.push(position(child, depth + 1));
        p.y = (p.placed[0].y + p.placed[p.placed.length - 1].y) / 2;
        return p;
    }
    function flatten(p, parent) {
        const entry = {
            id: p.node.id, label: p.node.label, x: p.x, y: p.y,
            hasChildren: p.node.children.length > 0, isCollapsed: p.isCollapsed,
        };
        if (parent) {
            entry.anchorX = parent.x + NODE_W;
            entry.anchorY = parent.y + NODE_H / 2;
        }
        out.push(entry);
        if (!p.isCollapsed) for (const child of p.placed) flatten(child, p);
    }
    flatten(position(ROOT, 0), null);
    return out;
}

const svgNS = 'http://www.w3.org/2000/svg';
const stage = document.getElementById('stage');

function render() {
    stage.textContent = '';
    const g = document.createElementNS(svgNS, 'g');
    g.setAttribute('transform',
        'translate(' + tf.panX + ',' + tf.panY + ') scale(' + tf.scale + ')');
    const nodes = layoutTree();
    for (const n of nodes) {
        if (n.anchorX === undefined) continue;
        const cy = n.y + NODE_H / 2;
        const mid = (n.anchorX + n.x) / 2;
        const path = document.createElementNS(svgNS, 'path');
        path.setAttribute('d', 'M ' + n.anchorX + ' ' + n.anchorY +
            ' C ' + mid + ' ' + n.anchorY + ' ' + mid + ' ' + cy + ' ' + n.x + ' ' + cy);
        path.setAttribute('fill', 'none');
        path.setAttribute('stroke', 'var(--connector)');
        path.setAttribute('stroke-width', '2');
        g.appendChild(path);
    }
    for (const n of nodes) {
        const rect = document.createElementNS(svgNS, 'rect');
        rect.setAttribute('x', n.x); rect.setAttribute('y', n.y);
        rect.setAttribute('width', NODE_W); rect.setAttribute('height', NODE_H);
        rect.setAttribute('rx', 8);
        rect.setAttribute('fill', 'var(--node-fill)');
        rect.setAttribute('stroke', 'var(--node-stroke)');
        if (n.hasChildren) rect.dataset.id = n.id;
        g.appendChild(rect);
        const text = document.createElementNS(svgNS, 'text');
        text.setAttribute('x', n.x + NODE_W / 2);
        text.setAttribute('y', n.y + NODE_H / 2);
        text.setAttribute('fill', 'var(--fg)');
        text.setAttribute('text-anchor', 'middle');
        text.setAttribute('dominant-baseline', 'central');
        text.setAttribute('font-size', '13');
        if (n.hasChildren) text.dataset.id = n.id;
        let label = n.label.length > 18 ? n.label.slice(0, 17) + '…' : n.label;
        if (n.hasChildren && n.isCollapsed) label = '▸ ' + label;
        text.textContent = label;
        g.appendChild(text);
    }
    stage.appendChild(g);
}

function clampScale(s) { return Math.min(MAX_SCALE, Math.max(MIN_SCALE, s)); }

// Pointer handling mirrors the gesture controller: one pointer pans,
// two pinch with a re-baselined distance, three or more are inert.
const active = new Map();
let lastDrag = null, pinchDist = null;

function dist(a, b) { return Math.hypot(a.x - b.x, a.y - b.y); }

stage.addEventListener('pointerdown', e => {
    active.set(e.pointerId, { x: e.clientX, y: e.clientY });
    lastDrag = null; pinchDist = null;
    stage.classList.add('dragging');
    stage.setPointerCapture(e.pointerId);
    moved = false;
});

let moved = false;
stage.addEventListener('pointermove', e => {
    if (!active.has(e.pointerId)) return;
    active.set(e.pointerId, { x: e.clientX, y: e.clientY });
    const pts = [...active.values()];
    if (pts.length === 1) {
        const p = pts[0];
        if (lastDrag) {
            const dx = p.x - lastDrag.x, dy = p.y - lastDrag.y;
            if (dx || dy) moved = true;
            tf.panX += dx; tf.panY += dy;
            render();
        }
        lastDrag = p;
    } else if (pts.length === 2) {
        moved = true;
        const d = dist(pts[0], pts[1]);
        if (pinchDist && pinchDist > 0) {
            tf.scale = clampScale(tf.scale * d / pinchDist);
            render();
        }
        pinchDist = d;
    }
});

function release(e) {
    active.delete(e.pointerId);
    if (active.size < 2) pinchDist = null;
    if (active.size === 1) lastDrag = [...active.values()][0];
    if (active.size === 0) {
        lastDrag = null;
        stage.classList.remove('dragging');
    }
}
stage.addEventListener('pointerup', e => {
    release(e);
    if (moved || active.size > 0) return;
    // Treat an unmoved press-release as a click; only nodes with
    // children carry an id, so leaves and empty space fall through.
    const id = e.target.dataset && e.target.dataset.id;
    if (!id) return;
    const next = new Set(collapsed);
    if (next.has(id)) next.delete(id); else next.add(id);
    collapsed = next;
    render();
});
stage.addEventListener('pointercancel', release);

stage.addEventListener('wheel', e => {
    e.preventDefault();
    tf.scale = clampScale(tf.scale * (1 - e.deltaY * WHEEL_RATE));
    render();
}, { passive: false });

document.getElementById('reset').addEventListener('click', () => {
    tf = { panX: 50, panY: 150, scale: 0.8 };
    collapsed = new Set();
    render();
});

render();
</script>
</body>
</html>
`, title, timestamp, theme.Background, theme.NodeFill, theme.NodeStroke, theme.Text, theme.Connector, treeJSON)
}
