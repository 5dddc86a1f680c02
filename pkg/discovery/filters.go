package discovery

// Subtree filters for IOS-XR. Each targets one YANG model; the namespace
// must match the device's schema exactly or the reply comes back empty.
const (
	FilterBGPASN = `<bgp xmlns="http://cisco.com/ns/yang/Cisco-IOS-XR-ipv4-bgp-cfg">
  <instance>
    <instance-as>
      <four-byte-as>
        <as/>
      </four-byte-as>
    </instance-as>
  </instance>
</bgp>`

	// Only established sessions are requested; other states never reach
	// the extractor.
	FilterBGPNeighbors = `<bgp xmlns="http://cisco.com/ns/yang/Cisco-IOS-XR-ipv4-bgp-oper">
  <instances>
    <instance>
      <instance-active>
        <default-vrf>
          <neighbors>
            <neighbor>
              <connection-state>bgp-st-estab</connection-state>
            </neighbor>
          </neighbors>
        </default-vrf>
      </instance-active>
    </instance>
  </instances>
</bgp>`

	FilterOSPFProcesses = `<ospf xmlns="http://cisco.com/ns/yang/Cisco-IOS-XR-ipv4-ospf-cfg">
  <processes>
    <process/>
  </processes>
</ospf>`

	FilterLinecards = `<platform xmlns="http://cisco.com/ns/yang/Cisco-IOS-XR-plat-chas-invmgr-ng-oper"/>`

	FilterLDPLinkHellos = `<mpls-ldp xmlns="http://cisco.com/ns/yang/Cisco-IOS-XR-mpls-ldp-oper">
  <global>
    <active>
      <default-vrf>
        <afs>
          <af>
            <discovery>
              <link-hellos>
                <link-hello/>
              </link-hellos>
            </discovery>
          </af>
        </afs>
      </default-vrf>
    </active>
  </global>
</mpls-ldp>`

	FilterBundleMembers = `<bundles xmlns="http://cisco.com/ns/yang/Cisco-IOS-XR-bundlemgr-oper">
  <bundles>
    <bundle>
      <members/>
    </bundle>
  </bundles>
</bundles>`
)
