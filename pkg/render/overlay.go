package render

// overlayRemovalJS strips consent banners, modals, and other fixed-position
// overlays before a snapshot or PDF is taken. Elements covering most of the
// viewport are removed regardless of class name.
const overlayRemovalJS = `() => {
	const overlaySelectors = [
		'[class*="overlay"]', '[class*="modal"]', '[class*="popup"]',
		'[class*="cookie"]', '[class*="gdpr"]', '[class*="consent"]',
		'[class*="newsletter"]', '[class*="subscribe"]', '[id*="overlay"]',
		'[id*="modal"]', '[id*="popup"]', '[style*="position: fixed"]'
	];

	overlaySelectors.forEach(selector => {
		document.querySelectorAll(selector).forEach(el => {
			const style = window.getComputedStyle(el);
			if (style.position === 'fixed' || style.position === 'absolute') {
				if (style.zIndex > 1000 || style.display === 'block') {
					el.remove();
				}
			}
		});
	});

	document.querySelectorAll('*').forEach(el => {
		const rect = el.getBoundingClientRect();
		const style = window.getComputedStyle(el);
		if (rect.width > window.innerWidth * 0.8 &&
			rect.height > window.innerHeight * 0.8 &&
			(style.position === 'fixed' || style.position === 'absolute')) {
			el.remove();
		}
	});
}`
