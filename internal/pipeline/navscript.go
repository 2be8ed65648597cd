package pipeline

// HighlightInclude loads highlight.js and colourises code blocks on page load.
// Omitted when code is highlighted at build time.
const HighlightInclude = `<script src="https://cdnjs.cloudflare.com/ajax/libs/highlight.js/10.1.2/highlight.min.js"></script>
<script>hljs.initHighlightingOnLoad();</script>`

// JQueryInclude is kept in every page head for themes that script against it.
const JQueryInclude = `<script src="https://ajax.googleapis.com/ajax/libs/jquery/3.5.1/jquery.min.js"></script>`

// Watermark attribution rendered through the template set's watermark template.
const (
	WatermarkText = "Iridium"
	WatermarkURL  = "https://github.com/fatalcenturion/Iridium"
)

// NavScript gives every heading an anchor and makes #fragment deep links work:
// the hash target is scrolled into view on load and whenever a heading is clicked.
// Anchor IDs use the heading's generated id when present, otherwise a slug
// of its text.
const NavScript = `
document.addEventListener('DOMContentLoaded', function() {
	function slug(text) {
		return text.toLowerCase().replace(/[^\w ]/g, '').split(' ').join('-');
	}
	function target() {
		return decodeURIComponent(window.location.hash.replace(/^#/, '').replace(/\?.*$/, ''));
	}
	function navigate() {
		var id = target();
		if (!id) return;
		var em = document.getElementById('anchor-' + id) || document.getElementById(id);
		if (em === null) return;
		var heading = em.classList.contains('anchor') ? em.parentElement : em;
		heading.scrollIntoView({ behavior: 'instant', block: 'start' });
	}
	document.querySelectorAll('h1, h2, h3, h4, h5, h6').forEach(function(element) {
		var id = element.id || slug(element.innerText);
		var anchor = document.createElement('div');
		anchor.className = 'anchor';
		anchor.style.display = 'none';
		anchor.id = 'anchor-' + id;
		element.appendChild(anchor);
		element.onclick = function() {
			window.location.hash = id;
			navigate();
		};
	});
	window.addEventListener('hashchange', navigate, false);
	navigate();
}, false);
`
