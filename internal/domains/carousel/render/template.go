package render

// Fragment markup. Mirrors the coupon-style widget the frontend assets
// expect: wrapper section with display settings as data attributes,
// slides in stored order, nav arrows, pagination dots and the bottom
// strip. The first slide is loaded eagerly at high priority; the rest
// are deferred.
const fragmentTemplate = `<section class="oc-carousel-wrapper" data-slides-per-view="{{.Settings.SlidesPerView}}" data-effect="{{.Settings.Effect}}" data-autoplay="{{if .Settings.Autoplay}}true{{else}}false{{end}}" data-autoplay-delay="{{.Settings.AutoplayDelayMs}}" data-device-class="{{.DeviceClass}}">
{{- if .Name}}
<h2 class="oc-carousel-title">{{.Name}}</h2>
{{- end}}
<div class="oc-carousel-container">
{{- range .Slides}}
<div class="oc-slide">
<div class="oc-coupon">
<div class="oc-coupon-cuts top"><div class="oc-top-cut"></div></div>
<div class="oc-coupon-container">
<img loading="{{.Loading}}" decoding="async" fetchpriority="{{.FetchPriority}}" draggable="false" alt="{{.Title}}" src="{{.Image}}" class="oc-coupon-bg">
<div class="oc-coupon-content">
<p class="oc-coupon-title">{{.Title}}</p>
<p class="oc-coupon-subtitle">{{.Subtitle}}</p>
</div>
</div>
<div class="oc-center-cut"></div>
<button class="oc-coupon-button" data-href="{{.ButtonLink}}">
<div class="oc-cta-text"><span>{{.ButtonText}}</span></div>
</button>
<div class="oc-coupon-cuts bottom"><div class="oc-bottom-cut"></div></div>
</div>
</div>
{{- end}}
</div>
<button class="oc-carousel-nav prev" aria-label="Previous slide">&lsaquo;</button>
<button class="oc-carousel-nav next" aria-label="Next slide">&rsaquo;</button>
<div class="oc-carousel-pagination" role="tablist">
{{- range .Slides}}
<button class="oc-carousel-dot{{if eq .Index 0}} active{{end}}" data-index="{{.Index}}" role="tab" aria-selected="{{if eq .Index 0}}true{{else}}false{{end}}" aria-label="Go to slide {{.Position}}"></button>
{{- end}}
</div>
<div class="oc-bottom-strip-container">
<div class="oc-stars-left"></div>
<div class="oc-bottom-strip"><p>+ Free Delivery &amp; Easy Returns</p></div>
<div class="oc-stars-right"></div>
</div>
</section>
`
