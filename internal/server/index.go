package server

import (
	"html/template"

	"github.com/valter-silva-au/sentinel/pkg/models"
)

type indexData struct {
	Snapshot models.DashboardSnapshot
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Sentinel</title>
<style>
body { font-family: system-ui, sans-serif; background: #fafafa; color: #171717; margin: 2rem; }
.panel { background: #fff; border: 1px solid #e5e5e5; border-radius: 12px; padding: 1rem; margin-bottom: 1rem; }
#chart { width: 100%; height: 240px; display: block; }
.badge { font-size: 0.75rem; padding: 2px 8px; border-radius: 999px; background: #eef2ff; color: #4f46e5; }
.axis { display: flex; justify-content: space-between; font-size: 0.7rem; color: #737373; }
.warning { color: #d97706; }
.success { color: #16a34a; }
</style>
</head>
<body>
<h1>Sentinel</h1>
<div class="panel">
  <div><strong id="load">{{.Snapshot.CurrentLoad}}%</strong> <span class="badge">Normal</span></div>
  <img id="chart" src="/chart.svg" alt="load chart">
  <div class="axis"><span>-60s</span><span>Now</span></div>
</div>
<div class="panel">
  <h2>Services</h2>
  <ul id="services">{{range .Snapshot.Services}}<li>{{.Name}}: {{.LatencyMs}}ms</li>{{end}}</ul>
</div>
<div class="panel">
  <h2>Live Stream</h2>
  <ul id="logs">{{range .Snapshot.Logs}}<li class="{{.Severity}}">{{.Timestamp}} {{.Message}}</li>{{end}}</ul>
</div>
<script>
(function () {
  var ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
  var frame = 0;
  function fill(id, items, row) {
    var ul = document.getElementById(id);
    ul.replaceChildren();
    items.forEach(function (item) {
      var r = row(item), li = document.createElement("li");
      li.textContent = r[0];
      li.className = r[1];
      ul.appendChild(li);
    });
  }
  ws.onmessage = function (ev) {
    var s = JSON.parse(ev.data);
    document.getElementById("load").textContent = s.current_load + "%";
    fill("services", s.services, function (x) { return [x.name + ": " + x.latency_ms + "ms", ""]; });
    fill("logs", s.logs, function (l) { return [l.timestamp + " " + l.message, l.severity]; });
    document.getElementById("chart").src = "/chart.svg?f=" + (frame++);
  };
})();
</script>
</body>
</html>
`))
