package chart

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body{margin:0;font-family:sans-serif;background:#fafafa}
#container{width:100%;max-width:{{.MaxWidth}}px;margin:0 auto}
#container svg{display:block;height:auto}
#tooltip{position:fixed;pointer-events:none;padding:6px 10px;border-radius:4px;background:rgba(255,255,255,.95);box-shadow:0 1px 4px rgba(0,0,0,.3);font-size:13px;line-height:1.4;transition:opacity .1s}
</style>
</head>
<body>
<div id="container"{{if .SocketPath}} data-socket="{{.SocketPath}}"{{end}}>
{{.SVG}}
</div>
<div id="tooltip" style="opacity:0"></div>
{{if .SocketPath}}<script>
(function () {
  var container = document.getElementById("container");
  var svg = container.querySelector("svg");
  var tip = document.getElementById("tooltip");
  var scheme = location.protocol === "https:" ? "wss:" : "ws:";
  var ws = new WebSocket(scheme + "//" + location.host + container.getAttribute("data-socket"));

  function send(msg) {
    if (ws.readyState === 1) ws.send(JSON.stringify(msg));
  }
  function measure() {
    send({type: "resize", width: container.clientWidth, height: window.innerHeight, viewportWidth: window.innerWidth});
  }

  ws.onopen = measure;
  window.addEventListener("resize", measure);

  svg.addEventListener("mouseover", function (e) {
    var t = e.target;
    if (!t.classList.contains("cell")) return;
    var measured = tip.textContent !== "";
    send({type: "pointerenter", year: +t.getAttribute("data-year"), month: +t.getAttribute("data-month"), x: e.clientX, y: e.clientY, tw: measured ? tip.offsetWidth : 0, th: measured ? tip.offsetHeight : 0});
  });
  svg.addEventListener("mouseout", function (e) {
    if (e.target.classList.contains("cell")) send({type: "pointerleave"});
  });

  ws.onmessage = function (ev) {
    var m = JSON.parse(ev.data);
    if (m.type === "resize") {
      svg.setAttribute("width", m.width);
      return;
    }
    if (m.type !== "tooltip") return;
    if (!m.visible) {
      tip.style.opacity = 0;
      tip.removeAttribute("data-year");
      return;
    }
    tip.textContent = "";
    m.lines.forEach(function (line, i) {
      if (i > 0) tip.appendChild(document.createElement("br"));
      tip.appendChild(document.createTextNode(line));
    });
    tip.style.background = m.color;
    tip.style.color = m.textColor;
    tip.setAttribute("data-year", m.year);
    tip.style.left = m.left + "px";
    tip.style.top = m.top + "px";
    tip.style.opacity = 1;
  };
})();
</script>{{end}}
</body>
</html>
`))

type pageData struct {
	Title      string
	MaxWidth   string
	SVG        template.HTML
	SocketPath string
}

// WritePage writes an HTML page embedding the SVG chart, a hidden tooltip and
// a script that forwards pointer and resize events to socketPath. An empty
// socketPath writes a static page with no script; the tooltip then never
// shows, since hover handling lives on the server.
func (c *Chart) WritePage(w io.Writer, socketPath string) error {
	var svg bytes.Buffer
	if err := c.WriteSVG(&svg, 0); err != nil {
		return fmt.Errorf("render svg: %w", err)
	}
	return pageTemplate.Execute(w, pageData{
		Title:      c.Title,
		MaxWidth:   formatNumber(c.Layout.Width),
		SVG:        template.HTML(svg.String()), //nolint:gosec // generated by WriteSVG with escaped text
		SocketPath: socketPath,
	})
}
